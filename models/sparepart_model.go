package models

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

// SparePart stock balances are a shared counter; decrements go through
// the service repository's conditional update, never a read-then-write.
type SparePart struct {
	gorm.Model
	ID         int64           `json:"id" gorm:"primary_key"`
	PartCode   string          `json:"part_code" gorm:"unique;not null" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	CategoryID int64           `json:"category_id"`
	Balance    int             `json:"balance" gorm:"default:0"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(14,2)"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}

func (s *SparePart) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = idgen.GenerateID()
	}
	return
}

type SparePartUsage struct {
	gorm.Model
	ServiceItemID int64  `json:"service_item_id" gorm:"index"`
	SparePartID   int64  `json:"spare_part_id"`
	PartCode      string `json:"part_code"`
	Quantity      int    `json:"quantity"`
	CreatedBy     int
}
