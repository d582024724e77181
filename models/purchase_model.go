package models

import (
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"
	"github.com/Mohanraj-TZ/vci-ui-sub000/types"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type PurchaseInvoice struct {
	gorm.Model
	ID          types.SnowflakeID `json:"id" gorm:"primary_key"`
	InvoiceNo   string            `json:"invoice_no" gorm:"unique"`
	VendorName  string            `json:"vendor_name"`
	InvoiceDate *time.Time        `json:"invoice_date" gorm:"type:date"`
	Remarks     string            `json:"remarks"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int

	// Relations
	Items []PurchaseItem `gorm:"foreignKey:PurchaseInvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (p *PurchaseInvoice) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == 0 {
		p.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// PurchaseItem is one received unit. Immutable after creation except the
// warranty dates, which vendors correct after the fact.
type PurchaseItem struct {
	gorm.Model
	ID                int64             `json:"id" gorm:"primary_key"`
	PurchaseInvoiceID types.SnowflakeID `json:"purchase_invoice_id" gorm:"index"`
	InvoiceNo         string            `json:"invoice_no"`
	CategoryID        int64             `json:"category_id"`
	SerialNo          string            `json:"serial_no" gorm:"unique;not null"`
	ReceivedDate      *time.Time        `json:"received_date" gorm:"type:date"`
	WarrantyStart     *time.Time        `json:"warranty_start" gorm:"type:date"`
	WarrantyEnd       *time.Time        `json:"warranty_end" gorm:"type:date"`
	UnitCost          decimal.Decimal   `json:"unit_cost" gorm:"type:decimal(14,2)"`
	CreatedBy         int
	UpdatedBy         int
	DeletedBy         int
}

func (p *PurchaseItem) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == 0 {
		p.ID = idgen.GenerateID()
	}
	return
}
