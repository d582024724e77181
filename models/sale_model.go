package models

import (
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"
	"github.com/Mohanraj-TZ/vci-ui-sub000/types"

	"gorm.io/gorm"
)

type SaleInvoice struct {
	gorm.Model
	ID           types.SnowflakeID `json:"id" gorm:"primary_key"`
	InvoiceNo    string            `json:"invoice_no" gorm:"unique"`
	CustomerName string            `json:"customer_name"`
	InvoiceDate  *time.Time        `json:"invoice_date" gorm:"type:date"`
	Status       string            `json:"status" gorm:"default:'confirmed'"`
	Remarks      string            `json:"remarks"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	// Relations
	Items []SaleItem `gorm:"foreignKey:SaleInvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (s *SaleInvoice) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

type SaleItem struct {
	gorm.Model
	ID            int64             `json:"id" gorm:"primary_key"`
	SaleInvoiceID types.SnowflakeID `json:"sale_invoice_id" gorm:"index"`
	InvoiceNo     string            `json:"invoice_no"`
	SerialNo      string            `json:"serial_no" gorm:"index;not null"`
	ShipmentDate  *time.Time        `json:"shipment_date" gorm:"type:date"`
	DeliveryDate  *time.Time        `json:"delivery_date" gorm:"type:date"`
	WarrantyStart *time.Time        `json:"warranty_start" gorm:"type:date"`
	WarrantyEnd   *time.Time        `json:"warranty_end" gorm:"type:date"`
	Status        string            `json:"status" gorm:"default:'sold'"`
	ReturnedAt    *time.Time        `json:"returned_at"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int
}

func (s *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = idgen.GenerateID()
	}
	return
}
