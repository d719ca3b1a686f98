package models

// Supplier represents a vendor that sells assets and backs warranties
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}
