package models

import "time"

// SettingsRowID pins the settings table to a single row.
const SettingsRowID = 1

// StoreSettings is the café-wide configuration document. Exactly one row
// exists; it is created implicitly with defaults on first read.
type StoreSettings struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ManualOpen bool      `gorm:"not null;default:true" json:"is_open"`
	OpenTime   string    `gorm:"not null;default:'10:00'" json:"open_time"`
	CloseTime  string    `gorm:"not null;default:'22:00'" json:"close_time"`
	Message    string    `json:"message"`
	UpdatedAt  time.Time `json:"updated_at"`
}
