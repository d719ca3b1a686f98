package models

import "time"

// License is a software license installed on a single asset
type License struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	SerialNumber    string    `json:"serial_number"`
	AcquisitionDate time.Time `json:"acquisition_date"`
	ExpirationDate  time.Time `json:"expiration_date"`
	Software        string    `json:"software"`
	AssetID         int64     `json:"asset_id"`
}
