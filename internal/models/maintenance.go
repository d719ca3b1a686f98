package models

import "time"

type MaintenanceRecord struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	AssetID     int64     `json:"asset_id"`
}
