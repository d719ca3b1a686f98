package models

import "time"

// Warranty covers exactly one asset and is backed by exactly one supplier.
type Warranty struct {
	ID         int64     `json:"id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	SupplierID int64     `json:"supplier_id"`
	AssetID    int64     `json:"asset_id"`
}
