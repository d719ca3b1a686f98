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

func TestCreateThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	dept, err := s.Departments.Create(ctx, models.Department{Name: "TI", Description: "Tecnologia"})
	require.NoError(t, err)
	supplier, err := s.Suppliers.Create(ctx, models.Supplier{Name: "Dell", TaxID: "00.000.000/0001-00", Contact: "sales@dell.example", Address: "Round Rock"})
	require.NoError(t, err)
	emp, err := s.Employees.Create(ctx, models.Employee{Name: "Ana", Role: "analyst", Email: "ana@example.com", Credential: "hash", DepartmentID: &dept.ID})
	require.NoError(t, err)

	asset := models.Asset{
		Name:            "Notebook Dell",
		Description:     "Latitude 5440",
		Manufacturer:    "Dell",
		Model:           "5440",
		SerialNumber:    "SN-001",
		AcquisitionDate: day(2024, 1, 15),
		Value:           5200.5,
		Location:        "Room 12",
		Status:          "active",
		ResponsibleID:   &emp.ID,
		DepartmentID:    &dept.ID,
		SupplierID:      &supplier.ID,
	}
	createdAsset, err := s.Assets.Create(ctx, asset)
	require.NoError(t, err)

	warranty := models.Warranty{StartDate: day(2024, 1, 15), EndDate: day(2027, 1, 15), SupplierID: supplier.ID, AssetID: createdAsset.ID}
	license := models.License{Name: "Office", Type: "subscription", SerialNumber: "LIC-1", AcquisitionDate: day(2024, 2, 1), ExpirationDate: day(2025, 2, 1), Software: "Microsoft 365", AssetID: createdAsset.ID}
	record := models.MaintenanceRecord{Date: day(2024, 6, 3), Description: "Battery replaced", Cost: 350, AssetID: createdAsset.ID}

	createdWarranty, err := s.Warranties.Create(ctx, warranty)
	require.NoError(t, err)
	createdLicense, err := s.Licenses.Create(ctx, license)
	require.NoError(t, err)
	createdRecord, err := s.Maintenance.Create(ctx, record)
	require.NoError(t, err)

	t.Run("Department", func(t *testing.T) {
		got, err := s.Departments.Get(ctx, dept.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Department{ID: dept.ID, Name: "TI", Description: "Tecnologia"}, got)
	})

	t.Run("Supplier", func(t *testing.T) {
		got, err := s.Suppliers.Get(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, supplier, got)
	})

	t.Run("Employee", func(t *testing.T) {
		got, err := s.Employees.Get(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, emp, got)
		assert.Equal(t, "hash", got.Credential)
	})

	t.Run("Asset", func(t *testing.T) {
		got, err := s.Assets.Get(ctx, createdAsset.ID)
		require.NoError(t, err)
		asset.ID = createdAsset.ID
		assert.Equal(t, asset, got)
	})

	t.Run("Warranty", func(t *testing.T) {
		got, err := s.Warranties.Get(ctx, createdWarranty.ID)
		require.NoError(t, err)
		warranty.ID = createdWarranty.ID
		assert.Equal(t, warranty, got)
	})

	t.Run("License", func(t *testing.T) {
		got, err := s.Licenses.Get(ctx, createdLicense.ID)
		require.NoError(t, err)
		license.ID = createdLicense.ID
		assert.Equal(t, license, got)
	})

	t.Run("MaintenanceRecord", func(t *testing.T) {
		got, err := s.Maintenance.Get(ctx, createdRecord.ID)
		require.NoError(t, err)
		record.ID = createdRecord.ID
		assert.Equal(t, record, got)
	})
}

func TestIdentifiersAreMonotonic(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	first, err := s.Departments.Create(ctx, models.Department{Name: "TI"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := s.Departments.Create(ctx, models.Department{Name: "RH"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	// Deleted identifiers are not reused.
	require.NoError(t, s.Departments.Delete(ctx, second.ID))
	third, err := s.Departments.Create(ctx, models.Department{Name: "Financeiro"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestCreateIgnoresPayloadID(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.Departments.Create(ctx, models.Department{ID: 42, Name: "TI"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = s.Departments.Get(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListReturnsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	empty, err := s.Suppliers.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Dell", "Lenovo", "HP"} {
		_, err := s.Suppliers.Create(ctx, models.Supplier{Name: name})
		require.NoError(t, err)
	}

	got, err := s.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Dell", got[0].Name)
	assert.Equal(t, "Lenovo", got[1].Name)
	assert.Equal(t, "HP", got[2].Name)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	dept, err := s.Departments.Create(ctx, models.Department{Name: "TI"})
	require.NoError(t, err)
	created, err := s.Assets.Create(ctx, models.Asset{
		Name:            "Notebook",
		Description:     "old",
		SerialNumber:    "SN-1",
		AcquisitionDate: day(2023, 5, 1),
		Value:           100,
		Status:          "active",
		DepartmentID:    &dept.ID,
	})
	require.NoError(t, err)

	replacement := models.Asset{
		ID:              999,
		Name:            "Notebook Pro",
		SerialNumber:    "SN-1",
		AcquisitionDate: day(2023, 6, 1),
		Value:           200,
		Status:          "maintenance",
	}
	updated, err := s.Assets.Update(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := s.Assets.Get(ctx, created.ID)
	require.NoError(t, err)
	replacement.ID = created.ID
	assert.Equal(t, replacement, got)
	assert.Empty(t, got.Description)
	assert.Nil(t, got.DepartmentID)

	_, err = s.Assets.Get(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMissingIdentifierIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	const missing = int64(12345)

	checks := map[string]struct {
		get    func() error
		update func() error
		del    func() error
	}{
		"asset": {
			get:    func() error { _, err := s.Assets.Get(ctx, missing); return err },
			update: func() error { _, err := s.Assets.Update(ctx, missing, models.Asset{AcquisitionDate: day(2024, 1, 1)}); return err },
			del:    func() error { return s.Assets.Delete(ctx, missing) },
		},
		"department": {
			get:    func() error { _, err := s.Departments.Get(ctx, missing); return err },
			update: func() error { _, err := s.Departments.Update(ctx, missing, models.Department{}); return err },
			del:    func() error { return s.Departments.Delete(ctx, missing) },
		},
		"supplier": {
			get:    func() error { _, err := s.Suppliers.Get(ctx, missing); return err },
			update: func() error { _, err := s.Suppliers.Update(ctx, missing, models.Supplier{}); return err },
			del:    func() error { return s.Suppliers.Delete(ctx, missing) },
		},
		"employee": {
			get:    func() error { _, err := s.Employees.Get(ctx, missing); return err },
			update: func() error { _, err := s.Employees.Update(ctx, missing, models.Employee{}); return err },
			del:    func() error { return s.Employees.Delete(ctx, missing) },
		},
		"warranty": {
			get:    func() error { _, err := s.Warranties.Get(ctx, missing); return err },
			update: func() error { _, err := s.Warranties.Update(ctx, missing, models.Warranty{}); return err },
			del:    func() error { return s.Warranties.Delete(ctx, missing) },
		},
		"license": {
			get:    func() error { _, err := s.Licenses.Get(ctx, missing); return err },
			update: func() error { _, err := s.Licenses.Update(ctx, missing, models.License{}); return err },
			del:    func() error { return s.Licenses.Delete(ctx, missing) },
		},
		"maintenance record": {
			get:    func() error { _, err := s.Maintenance.Get(ctx, missing); return err },
			update: func() error { _, err := s.Maintenance.Update(ctx, missing, models.MaintenanceRecord{}); return err },
			del:    func() error { return s.Maintenance.Delete(ctx, missing) },
		},
	}

	for name, c := range checks {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, c.get(), store.ErrNotFound, "get")
			assert.ErrorIs(t, c.update(), store.ErrNotFound, "update")
			assert.ErrorIs(t, c.del(), store.ErrNotFound, "delete")
		})
	}
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	sup, err := s.Suppliers.Create(ctx, models.Supplier{Name: "Dell"})
	require.NoError(t, err)

	require.NoError(t, s.Suppliers.Delete(ctx, sup.ID))
	assert.ErrorIs(t, s.Suppliers.Delete(ctx, sup.ID), store.ErrNotFound)

	_, err = s.Suppliers.Get(ctx, sup.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListByRejectsUnknownColumn(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Licenses.ListBy(context.Background(), "name", 1)
	assert.Error(t, err)

	_, err = s.Licenses.ListBy(context.Background(), "asset_id", 1)
	assert.NoError(t, err)
}
