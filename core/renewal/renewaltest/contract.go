// Package renewaltest provides contract tests for renewal.Store implementations.
package renewaltest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/core/target"
)

// Factory creates an empty store for each subtest.
type Factory func(t *testing.T) renewal.Store

// Sample returns a renewal for an aggregate of the given sites.
func Sample(ids ...target.SiteID) *renewal.Renewal {
	sources := target.NewSiteSet(ids...)
	t := &target.Target{
		Host:             sources.String(),
		Sources:          sources,
		AlternativeNames: target.NewNameSet("a.example.com", "b.example.com"),
		ExcludeBindings:  target.NewNameSet("b.example.com"),
		WebRootPath:      target.NoFileSystemWebRoot,
		PluginName:       "multisite",
		Validation: target.Validation{
			PluginName:  "filesystem",
			HTTPOptions: json.RawMessage(`{"path":"/srv/www"}`),
		},
	}
	r := renewal.New(t)
	r.StorePlugin = "filesystem"
	r.StoreOptions = json.RawMessage(`{"dir":"/var/lib/sitecert"}`)
	return r
}

// Run exercises the renewal.Store contract.
func Run(t *testing.T, factory Factory) {
	t.Run("SaveAndGet", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		want := Sample(3, 1)

		require.NoError(t, store.Save(ctx, want))

		got, err := store.Get(ctx, want.ID)
		require.NoError(t, err)
		assertEqualRenewal(t, want, got)
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		r := Sample(1, 2)
		require.NoError(t, store.Save(ctx, r))

		r.Target.Sources = target.NewSiteSet(2)
		r.Target.Host = "2"
		r.UpdatedAt = r.UpdatedAt.Add(time.Minute)
		require.NoError(t, store.Save(ctx, r))

		got, err := store.Get(ctx, r.ID)
		require.NoError(t, err)
		assertEqualRenewal(t, r, got)

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("SaveInvalid", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()

		assert.ErrorIs(t, store.Save(ctx, &renewal.Renewal{Target: &target.Target{}}), renewal.ErrInvalidRenewal)
		assert.ErrorIs(t, store.Save(ctx, &renewal.Renewal{ID: uuid.New()}), renewal.ErrInvalidRenewal)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		store := factory(t)
		_, err := store.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, renewal.ErrNotFound)
	})

	t.Run("ListOrderedByCreation", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()

		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		first, second, third := Sample(1), Sample(2), Sample(3)
		first.CreatedAt = base
		second.CreatedAt = base.Add(time.Hour)
		third.CreatedAt = base.Add(2 * time.Hour)

		for _, r := range []*renewal.Renewal{third, first, second} {
			require.NoError(t, store.Save(ctx, r))
		}

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
		assert.Equal(t, third.ID, got[2].ID)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		store := factory(t)
		got, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		r := Sample(1)
		require.NoError(t, store.Save(ctx, r))

		require.NoError(t, store.Delete(ctx, r.ID))
		_, err := store.Get(ctx, r.ID)
		assert.ErrorIs(t, err, renewal.ErrNotFound)

		assert.ErrorIs(t, store.Delete(ctx, r.ID), renewal.ErrNotFound)
	})

	t.Run("ReturnedValuesAreCopies", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		r := Sample(1, 2)
		require.NoError(t, store.Save(ctx, r))

		got, err := store.Get(ctx, r.ID)
		require.NoError(t, err)
		got.Target.AlternativeNames.Add("mutated.example.com")

		again, err := store.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.NotContains(t, again.Target.AlternativeNames.Names(), "mutated.example.com")
	})

	t.Run("ConcurrentSave", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()

		const n = 8
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.Save(ctx, Sample(target.SiteID(i+1)))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, n)
	})
}

func assertEqualRenewal(t *testing.T, want, got *renewal.Renewal) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.StorePlugin, got.StorePlugin)
	assert.JSONEq(t, string(want.StoreOptions), string(got.StoreOptions))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %s != %s", want.UpdatedAt, got.UpdatedAt)

	require.NotNil(t, got.Target)
	assert.Equal(t, want.Target.Host, got.Target.Host)
	assert.Equal(t, want.Target.Sources.IDs(), got.Target.Sources.IDs())
	assert.Equal(t, want.Target.AlternativeNames.Names(), got.Target.AlternativeNames.Names())
	assert.Equal(t, want.Target.ExcludeBindings.Names(), got.Target.ExcludeBindings.Names())
	assert.Equal(t, want.Target.WebRootPath, got.Target.WebRootPath)
	assert.Equal(t, want.Target.Validation.PluginName, got.Target.Validation.PluginName)
	assert.JSONEq(t, string(want.Target.Validation.HTTPOptions), string(got.Target.Validation.HTTPOptions))
}
