package models

import "time"

// TransactionHistory is the append-only audit trail written next to every
// lifecycle mutation.
type TransactionHistory struct {
	ID        uint   `gorm:"primaryKey"`
	RefNo     string `json:"ref_no" gorm:"index"`
	SerialNo  string `json:"serial_no" gorm:"index"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Detail    string `json:"detail"`
	CreatedAt time.Time
	CreatedBy int
	UpdatedAt time.Time
	UpdatedBy int
}
