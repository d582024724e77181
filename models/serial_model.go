package models

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	ID        int64  `json:"id" gorm:"primary_key"`
	Code      string `json:"code" gorm:"unique;not null" validate:"required"`
	Name      string `json:"name" validate:"required"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == 0 {
		c.ID = idgen.GenerateID()
	}
	return
}

// Serial is the persisted registry row. Stage and the owner/prior-owner
// refs are written only by the registry store; everything else reads.
type Serial struct {
	gorm.Model
	ID         int64  `json:"id" gorm:"primary_key"`
	SerialNo   string `json:"serial_no" gorm:"unique;not null"`
	CategoryID int64  `json:"category_id" gorm:"index"`
	Stage      string `json:"stage" gorm:"default:'available'"`
	StageRef   string `json:"stage_ref"`
	PrevStage  string `json:"prev_stage"`
	PrevRef    string `json:"prev_ref"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}

func (s *Serial) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = idgen.GenerateID()
	}
	return
}
