package models

import "time"

// Asset represents a tracked device or item owned by the organization.
// Department, supplier and responsible employee are optional references.
type Asset struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Manufacturer    string    `json:"manufacturer"`
	Model           string    `json:"model"`
	SerialNumber    string    `json:"serial_number"`
	AcquisitionDate time.Time `json:"acquisition_date"`
	Value           float64   `json:"value"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	ResponsibleID   *int64    `json:"responsible_id,omitempty"`
	DepartmentID    *int64    `json:"department_id,omitempty"`
	SupplierID      *int64    `json:"supplier_id,omitempty"`
}
