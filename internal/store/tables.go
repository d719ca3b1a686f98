package store

import (
	"devicehub-api/internal/models"
)

var assetTable = table[models.Asset]{
	entity: "asset",
	name:   "assets",
	columns: []string{
		"name", "description", "manufacturer", "model", "serial_number",
		"acquisition_date", "value", "location", "status",
		"responsible_id", "department_id", "supplier_id",
	},
	id: func(a *models.Asset) *int64 { return &a.ID },
	fields: func(a *models.Asset) []any {
		return []any{
			&a.Name, &a.Description, &a.Manufacturer, &a.Model, &a.SerialNumber,
			&a.AcquisitionDate, &a.Value, &a.Location, &a.Status,
			&a.ResponsibleID, &a.DepartmentID, &a.SupplierID,
		}
	},
	normalize: func(a *models.Asset) { a.AcquisitionDate = a.AcquisitionDate.UTC() },
}

var departmentTable = table[models.Department]{
	entity:  "department",
	name:    "departments",
	columns: []string{"name", "description"},
	id:      func(d *models.Department) *int64 { return &d.ID },
	fields:  func(d *models.Department) []any { return []any{&d.Name, &d.Description} },
}

var supplierTable = table[models.Supplier]{
	entity:  "supplier",
	name:    "suppliers",
	columns: []string{"name", "tax_id", "contact", "address"},
	id:      func(s *models.Supplier) *int64 { return &s.ID },
	fields: func(s *models.Supplier) []any {
		return []any{&s.Name, &s.TaxID, &s.Contact, &s.Address}
	},
}

var employeeTable = table[models.Employee]{
	entity:  "employee",
	name:    "employees",
	columns: []string{"name", "role", "email", "credential", "department_id"},
	id:      func(e *models.Employee) *int64 { return &e.ID },
	fields: func(e *models.Employee) []any {
		return []any{&e.Name, &e.Role, &e.Email, &e.Credential, &e.DepartmentID}
	},
}

var warrantyTable = table[models.Warranty]{
	entity:  "warranty",
	name:    "warranties",
	columns: []string{"start_date", "end_date", "supplier_id", "asset_id"},
	id:      func(w *models.Warranty) *int64 { return &w.ID },
	fields: func(w *models.Warranty) []any {
		return []any{&w.StartDate, &w.EndDate, &w.SupplierID, &w.AssetID}
	},
	normalize: func(w *models.Warranty) {
		w.StartDate = w.StartDate.UTC()
		w.EndDate = w.EndDate.UTC()
	},
}

var licenseTable = table[models.License]{
	entity: "license",
	name:   "licenses",
	columns: []string{
		"name", "type", "serial_number", "acquisition_date", "expiration_date",
		"software", "asset_id",
	},
	id: func(l *models.License) *int64 { return &l.ID },
	fields: func(l *models.License) []any {
		return []any{
			&l.Name, &l.Type, &l.SerialNumber, &l.AcquisitionDate, &l.ExpirationDate,
			&l.Software, &l.AssetID,
		}
	},
	normalize: func(l *models.License) {
		l.AcquisitionDate = l.AcquisitionDate.UTC()
		l.ExpirationDate = l.ExpirationDate.UTC()
	},
}

var maintenanceTable = table[models.MaintenanceRecord]{
	entity:  "maintenance record",
	name:    "maintenance_records",
	columns: []string{"date", "description", "cost", "asset_id"},
	id:      func(m *models.MaintenanceRecord) *int64 { return &m.ID },
	fields: func(m *models.MaintenanceRecord) []any {
		return []any{&m.Date, &m.Description, &m.Cost, &m.AssetID}
	},
	normalize: func(m *models.MaintenanceRecord) { m.Date = m.Date.UTC() },
}
