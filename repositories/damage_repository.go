package repositories

import (
	"fmt"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"
	"github.com/Mohanraj-TZ/vci-ui-sub000/utils"

	"gorm.io/gorm"
)

type DamageRepository struct {
	db  *gorm.DB
	reg *registry.Registry
}

func NewDamageRepository(db *gorm.DB, reg *registry.Registry) *DamageRepository {
	return &DamageRepository{db: db, reg: reg}
}

type DamageRequest struct {
	SerialNo       string
	PurchaseItemID int64
	Transportation string
	Remarks        string
	Actor          int
}

// MarkDamaged flags a unit damaged. A request may identify the unit by
// serial or, for PCB-level damage, by the purchase item alone; the serial
// is then resolved from the item. The transition table decides which
// stages may go to Damaged (Available and Sold); anything else is
// rejected before a record is written.
func (r *DamageRepository) MarkDamaged(req DamageRequest) (models.DamageRecord, error) {
	serialNo := req.SerialNo
	if serialNo == "" {
		if req.PurchaseItemID == 0 {
			return models.DamageRecord{}, fmt.Errorf("damage needs a serial or a purchase item")
		}
		var item models.PurchaseItem
		if err := r.db.Where("id = ?", req.PurchaseItemID).First(&item).Error; err != nil {
			return models.DamageRecord{}, err
		}
		serialNo = item.SerialNo
	}

	now := time.Now().UTC()
	record := models.DamageRecord{
		SerialNo:       serialNo,
		PurchaseItemID: req.PurchaseItemID,
		Transportation: req.Transportation,
		Remarks:        req.Remarks,
		ReportedAt:     &now,
		CreatedBy:      req.Actor,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if err := utils.InsertTransactionHistory(tx, fmt.Sprintf("DMG-%d", record.ID), serialNo,
			models.DamageStatusPending, "damage", req.Remarks, req.Actor); err != nil {
			return err
		}
		if _, err := r.reg.Transition(serialNo, registry.StageDamaged, fmt.Sprintf("DMG-%d", record.ID)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.DamageRecord{}, err
	}
	return record, nil
}

// UpdateStatus moves a damage record along its paperwork. "replaced" puts
// the serial back in stock; "returned" (to vendor) scraps it from the
// registry's point of view. pending/in-transit only update the record.
func (r *DamageRepository) UpdateStatus(recordID int64, status, remarks string, actor int) (models.DamageRecord, error) {
	switch status {
	case models.DamageStatusPending, models.DamageStatusInTransit,
		models.DamageStatusReplaced, models.DamageStatusReturned:
	default:
		return models.DamageRecord{}, fmt.Errorf("unknown damage status %q", status)
	}

	var record models.DamageRecord
	if err := r.db.Where("id = ?", recordID).First(&record).Error; err != nil {
		return models.DamageRecord{}, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&record).Updates(map[string]interface{}{
			"status":     status,
			"remarks":    remarks,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}
		if err := utils.InsertTransactionHistory(tx, fmt.Sprintf("DMG-%d", record.ID), record.SerialNo,
			status, "damage", remarks, actor); err != nil {
			return err
		}

		switch status {
		case models.DamageStatusReplaced:
			if _, err := r.reg.Transition(record.SerialNo, registry.StageAvailable, ""); err != nil {
				return err
			}
		case models.DamageStatusReturned:
			if _, err := r.reg.Transition(record.SerialNo, registry.StageScrapped, "vendor-return"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.DamageRecord{}, err
	}

	record.Status = status
	record.Remarks = remarks
	return record, nil
}

func (r *DamageRepository) GetAllDamages() ([]models.DamageRecord, error) {
	var records []models.DamageRecord
	err := r.db.Order("created_at desc").Find(&records).Error
	return records, err
}

func (r *DamageRepository) GetDamagesBySerial(serialNo string) ([]models.DamageRecord, error) {
	var records []models.DamageRecord
	err := r.db.Where("serial_no = ?", serialNo).Order("created_at").Find(&records).Error
	return records, err
}
