package renewal_test

import (
	"testing"

	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/core/renewal/renewaltest"
)

func TestMemoryStore(t *testing.T) {
	renewaltest.Run(t, func(t *testing.T) renewal.Store {
		return renewal.NewMemoryStore()
	})
}
