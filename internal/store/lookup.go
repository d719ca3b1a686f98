package store

import (
	"context"
	"fmt"

	"devicehub-api/internal/models"
)

// children resolves a one-to-many relation by identifier. The parent must
// exist; an empty slice means it has no children.
func children[P, C any](ctx context.Context, parent *Repository[P], child *Repository[C], column string, id int64) ([]C, error) {
	if _, err := parent.Get(ctx, id); err != nil {
		return nil, err
	}
	return child.ListBy(ctx, column, id)
}

// AssetLicenses lists the licenses installed on an asset.
func (s *Store) AssetLicenses(ctx context.Context, assetID int64) ([]models.License, error) {
	return children(ctx, s.Assets, s.Licenses, "asset_id", assetID)
}

// AssetMaintenance lists the maintenance records of an asset.
func (s *Store) AssetMaintenance(ctx context.Context, assetID int64) ([]models.MaintenanceRecord, error) {
	return children(ctx, s.Assets, s.Maintenance, "asset_id", assetID)
}

// AssetWarranty returns the single warranty of an asset, or ErrNotFound.
func (s *Store) AssetWarranty(ctx context.Context, assetID int64) (models.Warranty, error) {
	ws, err := children(ctx, s.Assets, s.Warranties, "asset_id", assetID)
	if err != nil {
		return models.Warranty{}, err
	}
	if len(ws) == 0 {
		return models.Warranty{}, fmt.Errorf("warranty for asset %d: %w", assetID, ErrNotFound)
	}
	return ws[0], nil
}

// DepartmentAssets lists the assets allocated to a department.
func (s *Store) DepartmentAssets(ctx context.Context, departmentID int64) ([]models.Asset, error) {
	return children(ctx, s.Departments, s.Assets, "department_id", departmentID)
}

// DepartmentEmployees lists the employees of a department.
func (s *Store) DepartmentEmployees(ctx context.Context, departmentID int64) ([]models.Employee, error) {
	return children(ctx, s.Departments, s.Employees, "department_id", departmentID)
}

// SupplierAssets lists the assets bought from a supplier.
func (s *Store) SupplierAssets(ctx context.Context, supplierID int64) ([]models.Asset, error) {
	return children(ctx, s.Suppliers, s.Assets, "supplier_id", supplierID)
}

// SupplierWarranties lists the warranties a supplier backs.
func (s *Store) SupplierWarranties(ctx context.Context, supplierID int64) ([]models.Warranty, error) {
	return children(ctx, s.Suppliers, s.Warranties, "supplier_id", supplierID)
}

// EmployeeAssets lists the assets an employee is responsible for.
func (s *Store) EmployeeAssets(ctx context.Context, employeeID int64) ([]models.Asset, error) {
	return children(ctx, s.Employees, s.Assets, "responsible_id", employeeID)
}

// AssetBySerial finds an asset by serial number. ok is false when none matches.
func (s *Store) AssetBySerial(ctx context.Context, serial string) (a models.Asset, ok bool, err error) {
	return s.Assets.findBy(ctx, "serial_number", serial)
}
