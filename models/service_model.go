package models

import (
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"
	"github.com/Mohanraj-TZ/vci-ui-sub000/types"

	"gorm.io/gorm"
)

// Challan is the shipment document grouping units sent for service.
type Challan struct {
	gorm.Model
	ID          types.SnowflakeID `json:"id" gorm:"primary_key"`
	ChallanNo   string            `json:"challan_no" gorm:"unique"`
	ChallanDate *time.Time        `json:"challan_date" gorm:"type:date"`
	Transporter string            `json:"transporter"`
	Status      string            `json:"status" gorm:"default:'open'"`
	Remarks     string            `json:"remarks"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int

	// Relations
	Items     []ServiceItem     `gorm:"foreignKey:ChallanID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	Movements []ChallanMovement `gorm:"foreignKey:ChallanID;references:ID;constraint:OnDelete:CASCADE" json:"movements"`
}

func (c *Challan) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == 0 {
		c.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// ServiceItem is one VCI unit on a challan. PcbSerialNo records a PCB
// swapped in during repair, for replacement tracking. IsUrgent pulls the
// item out of normal queue order.
type ServiceItem struct {
	gorm.Model
	ID            int64             `json:"id" gorm:"primary_key"`
	ChallanID     types.SnowflakeID `json:"challan_id" gorm:"index"`
	ChallanNo     string            `json:"challan_no"`
	VciSerialNo   string            `json:"vci_serial_no" gorm:"index;not null"`
	PcbSerialNo   string            `json:"pcb_serial_no"`
	TestingStatus string            `json:"testing_status"`
	IssueFound    string            `json:"issue_found"`
	ActionTaken   string            `json:"action_taken"`
	IsUrgent      bool              `json:"is_urgent" gorm:"default:false"`
	Status        string            `json:"status" gorm:"default:'pending'"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int

	// Relations
	Usages  []SparePartUsage `gorm:"foreignKey:ServiceItemID;references:ID;constraint:OnDelete:CASCADE" json:"usages"`
	Repairs []RepairHistory  `gorm:"foreignKey:ServiceItemID;references:ID;constraint:OnDelete:CASCADE" json:"repairs"`
}

func (s *ServiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = idgen.GenerateID()
	}
	return
}

// ChallanMovement is one hop of the challan in transit.
type ChallanMovement struct {
	gorm.Model
	ChallanID types.SnowflakeID `json:"challan_id" gorm:"index"`
	Status    string            `json:"status"`
	Remarks   string            `json:"remarks"`
	MovedAt   *time.Time        `json:"moved_at"`
	CreatedBy int
}

// RepairHistory is one action taken on a service item in the workshop.
type RepairHistory struct {
	gorm.Model
	ServiceItemID int64  `json:"service_item_id" gorm:"index"`
	Action        string `json:"action"`
	Remarks       string `json:"remarks"`
	CreatedBy     int
}
