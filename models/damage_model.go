package models

import (
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"

	"gorm.io/gorm"
)

// Damage statuses follow the workshop paperwork: pending -> in-transit ->
// replaced (unit back in stock) or returned (sent back to the vendor).
const (
	DamageStatusPending   = "pending"
	DamageStatusInTransit = "in-transit"
	DamageStatusReplaced  = "replaced"
	DamageStatusReturned  = "returned"
)

type DamageRecord struct {
	gorm.Model
	ID             int64      `json:"id" gorm:"primary_key"`
	SerialNo       string     `json:"serial_no" gorm:"index;not null"`
	PurchaseItemID int64      `json:"purchase_item_id" gorm:"default:null"`
	Status         string     `json:"status" gorm:"default:'pending'"`
	Transportation string     `json:"transportation"`
	Remarks        string     `json:"remarks"`
	ReportedAt     *time.Time `json:"reported_at"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}

func (d *DamageRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == 0 {
		d.ID = idgen.GenerateID()
	}
	return
}
