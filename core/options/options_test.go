package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/options"
)

func TestRequiredString(t *testing.T) {
	o := options.New(map[string]string{"SiteId": " 1,2 ", "Blank": "  "})

	v, err := o.RequiredString("siteid")
	require.NoError(t, err)
	assert.Equal(t, "1,2", v)

	_, err = o.RequiredString("Blank")
	assert.ErrorIs(t, err, options.ErrMissingOption)

	_, err = o.RequiredString("Missing")
	assert.ErrorIs(t, err, options.ErrMissingOption)
	assert.Contains(t, err.Error(), "Missing")
}

func TestString(t *testing.T) {
	o := options.New(nil).Set("ExcludeBindings", "a.com").SetIf("Empty", "")

	v, ok := o.String("excludebindings")
	assert.True(t, ok)
	assert.Equal(t, "a.com", v)

	_, ok = o.String("Empty")
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  bool
	}{
		{name: "unset", want: false},
		{name: "switch", value: ptr(""), want: true},
		{name: "true", value: ptr("true"), want: true},
		{name: "one", value: ptr("1"), want: true},
		{name: "false", value: ptr("false"), want: false},
		{name: "garbage", value: ptr("maybe"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := options.New(nil)
			if tt.value != nil {
				o.Set("HideHttps", *tt.value)
			}
			assert.Equal(t, tt.want, o.Bool("HideHttps"))
		})
	}
}

func ptr(s string) *string { return &s }
