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

func TestAssetChildrenScenario(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	asset, err := s.Assets.Create(ctx, models.Asset{Name: "Notebook Dell", AcquisitionDate: day(2024, 1, 15)})
	require.NoError(t, err)
	require.Equal(t, int64(1), asset.ID)

	license, err := s.Licenses.Create(ctx, models.License{Name: "Office", AcquisitionDate: day(2024, 1, 15), ExpirationDate: day(2025, 1, 15), AssetID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), license.ID)

	record, err := s.Maintenance.Create(ctx, models.MaintenanceRecord{Date: day(2024, 2, 1), Description: "Setup", Cost: 80, AssetID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), record.ID)

	licenses, err := s.AssetLicenses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.Equal(t, license, licenses[0])

	records, err := s.AssetMaintenance(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])
}

func TestRelationshipLookups(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	f := seed(t, s)

	_, err := s.Assets.Create(ctx, models.Asset{Name: "Unassigned", AcquisitionDate: day(2024, 1, 1)})
	require.NoError(t, err)

	warranty, err := s.AssetWarranty(ctx, f.asset.ID)
	require.NoError(t, err)
	assert.Equal(t, f.warranty, warranty)

	deptAssets, err := s.DepartmentAssets(ctx, f.dept.ID)
	require.NoError(t, err)
	require.Len(t, deptAssets, 1)
	assert.Equal(t, f.asset.ID, deptAssets[0].ID)

	deptEmployees, err := s.DepartmentEmployees(ctx, f.dept.ID)
	require.NoError(t, err)
	require.Len(t, deptEmployees, 1)
	assert.Equal(t, f.employee.ID, deptEmployees[0].ID)

	supplierAssets, err := s.SupplierAssets(ctx, f.supplier.ID)
	require.NoError(t, err)
	assert.Len(t, supplierAssets, 1)

	supplierWarranties, err := s.SupplierWarranties(ctx, f.supplier.ID)
	require.NoError(t, err)
	assert.Len(t, supplierWarranties, 1)

	employeeAssets, err := s.EmployeeAssets(ctx, f.employee.ID)
	require.NoError(t, err)
	require.Len(t, employeeAssets, 1)
	assert.Equal(t, f.asset.ID, employeeAssets[0].ID)
}

func TestLookupsOnMissingParent(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.AssetLicenses(ctx, 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.DepartmentEmployees(ctx, 7)
	assert.ErrorIs(t, err, store.ErrNotFound)

	asset, err := s.Assets.Create(ctx, models.Asset{Name: "Tablet", AcquisitionDate: day(2024, 1, 1)})
	require.NoError(t, err)

	_, err = s.AssetWarranty(ctx, asset.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	licenses, err := s.AssetLicenses(ctx, asset.ID)
	require.NoError(t, err)
	assert.Empty(t, licenses)
}

func TestAssetBySerial(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.Assets.Create(ctx, models.Asset{Name: "Switch", SerialNumber: "FOC1234", AcquisitionDate: day(2024, 1, 1)})
	require.NoError(t, err)

	got, ok, err := s.AssetBySerial(ctx, "FOC1234")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, got)

	_, ok, err = s.AssetBySerial(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
