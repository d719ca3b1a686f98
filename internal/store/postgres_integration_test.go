//go:build integration

package store_test

import (
	"context"
	"testing"

	"devicehub-api/internal/models"
	"devicehub-api/internal/store"
	"devicehub-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresIntegrity(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewPostgresStore(t)
	f := seed(t, s)

	t.Run("RestrictOnDelete", func(t *testing.T) {
		assert.ErrorIs(t, s.Departments.Delete(ctx, f.dept.ID), store.ErrReferenced)
		assert.ErrorIs(t, s.Suppliers.Delete(ctx, f.supplier.ID), store.ErrReferenced)
		assert.ErrorIs(t, s.Employees.Delete(ctx, f.employee.ID), store.ErrReferenced)
		assert.ErrorIs(t, s.Assets.Delete(ctx, f.asset.ID), store.ErrReferenced)
	})

	t.Run("UniqueWarranty", func(t *testing.T) {
		_, err := s.Warranties.Create(ctx, models.Warranty{StartDate: day(2025, 1, 1), EndDate: day(2026, 1, 1), SupplierID: f.supplier.ID, AssetID: f.asset.ID})
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("DanglingReference", func(t *testing.T) {
		_, err := s.Licenses.Create(ctx, models.License{Name: "Office", AssetID: 9999})
		assert.ErrorIs(t, err, store.ErrInvalid)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		got, err := s.Assets.Get(ctx, f.asset.ID)
		require.NoError(t, err)
		assert.Equal(t, f.asset, got)
	})

	t.Run("Migrate is idempotent", func(t *testing.T) {
		applied, err := s.Migrate(ctx)
		require.NoError(t, err)
		assert.Empty(t, applied)
	})
}
