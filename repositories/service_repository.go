package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"
	"github.com/Mohanraj-TZ/vci-ui-sub000/utils"

	"gorm.io/gorm"
)

// ErrInsufficientStock rejects a spare part consumption that would drive
// the balance negative.
var ErrInsufficientStock = errors.New("insufficient spare part stock")

type ServiceRepository struct {
	db  *gorm.DB
	reg *registry.Registry
}

func NewServiceRepository(db *gorm.DB, reg *registry.Registry) *ServiceRepository {
	return &ServiceRepository{db: db, reg: reg}
}

func (r *ServiceRepository) GenerateChallanNumber() (string, error) {
	var lastChallan models.Challan
	if err := r.db.Last(&lastChallan).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return utils.NextDocNumber("CH", lastChallan.ChallanNo, time.Now()), nil
}

type ChallanItemRequest struct {
	VciSerialNo   string
	TestingStatus string
	IssueFound    string
	IsUrgent      bool
}

type ChallanRequest struct {
	ChallanDate *time.Time
	Transporter string
	Remarks     string
	Items       []ChallanItemRequest
	Actor       int
}

// CreateChallan opens a service batch: every listed unit moves to
// InService under the new challan number in one registry batch, so a
// single ineligible unit rejects the whole challan.
func (r *ServiceRepository) CreateChallan(req ChallanRequest) (models.Challan, error) {
	if len(req.Items) == 0 {
		return models.Challan{}, fmt.Errorf("challan needs at least one item")
	}

	challanNo, err := r.GenerateChallanNumber()
	if err != nil {
		return models.Challan{}, err
	}

	challan := models.Challan{
		ChallanNo:   challanNo,
		ChallanDate: req.ChallanDate,
		Transporter: req.Transporter,
		Status:      "sent",
		Remarks:     req.Remarks,
		CreatedBy:   req.Actor,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&challan).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		movement := models.ChallanMovement{
			ChallanID: challan.ID,
			Status:    "sent",
			Remarks:   "dispatched via " + req.Transporter,
			MovedAt:   &now,
			CreatedBy: req.Actor,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		moves := make([]registry.Move, 0, len(req.Items))
		for _, it := range req.Items {
			item := models.ServiceItem{
				ChallanID:     challan.ID,
				ChallanNo:     challanNo,
				VciSerialNo:   it.VciSerialNo,
				TestingStatus: it.TestingStatus,
				IssueFound:    it.IssueFound,
				IsUrgent:      it.IsUrgent,
				CreatedBy:     req.Actor,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if err := utils.InsertTransactionHistory(tx, challanNo, it.VciSerialNo, "sent", "service",
				"sent for service: "+it.IssueFound, req.Actor); err != nil {
				return err
			}
			moves = append(moves, registry.Move{SerialNo: it.VciSerialNo, To: registry.StageInService, OwnerRef: challanNo})
		}

		if _, err := r.reg.ApplyBatch(moves); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.Challan{}, err
	}

	return r.GetChallan(int64(challan.ID))
}

// RecordMovement appends one transit hop to a challan.
func (r *ServiceRepository) RecordMovement(challanID int64, status, remarks string, actor int) error {
	var challan models.Challan
	if err := r.db.Where("id = ?", challanID).First(&challan).Error; err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		movement := models.ChallanMovement{
			ChallanID: challan.ID,
			Status:    status,
			Remarks:   remarks,
			MovedAt:   &now,
			CreatedBy: actor,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		return tx.Model(&challan).Updates(map[string]interface{}{
			"status":     status,
			"updated_by": actor,
		}).Error
	})
}

type SpareUsageRequest struct {
	PartCode string
	Quantity int
}

type RepairRequest struct {
	ServiceItemID int64
	TestingStatus string
	IssueFound    string
	ActionTaken   string
	PcbSerialNo   string
	Usages        []SpareUsageRequest
	Actor         int
}

// CompleteRepair closes one service item: consumed spare parts are
// decremented with a guarded update, the repair is logged, and the serial
// walks InService -> Repaired -> its pre-service stage in a single
// registry batch, restoring the prior owner reference.
func (r *ServiceRepository) CompleteRepair(req RepairRequest) (models.ServiceItem, error) {
	var item models.ServiceItem
	if err := r.db.Where("id = ?", req.ServiceItemID).First(&item).Error; err != nil {
		return models.ServiceItem{}, err
	}
	if item.Status != "pending" {
		return models.ServiceItem{}, fmt.Errorf("service item %d is already %s", item.ID, item.Status)
	}

	serial, err := r.reg.Lookup(item.VciSerialNo)
	if err != nil {
		return models.ServiceItem{}, err
	}
	restoreStage := serial.PrevStage
	restoreRef := serial.PrevRef
	if restoreStage != registry.StageSold {
		restoreStage = registry.StageAvailable
		restoreRef = ""
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range req.Usages {
			if u.Quantity <= 0 {
				return fmt.Errorf("spare part %s: quantity must be positive", u.PartCode)
			}

			var part models.SparePart
			if err := tx.Where("part_code = ?", u.PartCode).First(&part).Error; err != nil {
				return fmt.Errorf("spare part %s: %w", u.PartCode, err)
			}

			// guarded decrement keeps concurrent repairs honest
			res := tx.Model(&models.SparePart{}).
				Where("id = ? AND balance >= ?", part.ID, u.Quantity).
				Update("balance", gorm.Expr("balance - ?", u.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("spare part %s: %w", u.PartCode, ErrInsufficientStock)
			}

			usage := models.SparePartUsage{
				ServiceItemID: item.ID,
				SparePartID:   part.ID,
				PartCode:      part.PartCode,
				Quantity:      u.Quantity,
				CreatedBy:     req.Actor,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&item).Updates(map[string]interface{}{
			"testing_status": req.TestingStatus,
			"issue_found":    req.IssueFound,
			"action_taken":   req.ActionTaken,
			"pcb_serial_no":  req.PcbSerialNo,
			"status":         "repaired",
			"updated_by":     req.Actor,
		}).Error; err != nil {
			return err
		}

		repair := models.RepairHistory{
			ServiceItemID: item.ID,
			Action:        req.ActionTaken,
			Remarks:       req.IssueFound,
			CreatedBy:     req.Actor,
		}
		if err := tx.Create(&repair).Error; err != nil {
			return err
		}

		if err := utils.InsertTransactionHistory(tx, item.ChallanNo, item.VciSerialNo, "repaired", "service",
			req.ActionTaken, req.Actor); err != nil {
			return err
		}

		_, err := r.reg.ApplyBatch([]registry.Move{
			{SerialNo: item.VciSerialNo, To: registry.StageRepaired, OwnerRef: item.ChallanNo},
			{SerialNo: item.VciSerialNo, To: restoreStage, OwnerRef: restoreRef},
		})
		return err
	})
	if err != nil {
		return models.ServiceItem{}, err
	}

	return r.GetServiceItem(item.ID)
}

func (r *ServiceRepository) GetChallan(id int64) (models.Challan, error) {
	var challan models.Challan
	err := r.db.Preload("Items").Preload("Items.Usages").Preload("Items.Repairs").
		Preload("Movements").Where("id = ?", id).First(&challan).Error
	return challan, err
}

func (r *ServiceRepository) GetAllChallans() ([]models.Challan, error) {
	var challans []models.Challan
	err := r.db.Preload("Items").Order("created_at desc").Find(&challans).Error
	return challans, err
}

func (r *ServiceRepository) GetServiceItem(id int64) (models.ServiceItem, error) {
	var item models.ServiceItem
	err := r.db.Preload("Usages").Preload("Repairs").Where("id = ?", id).First(&item).Error
	return item, err
}

// GetUrgentPending lists urgent items still open, oldest first, for the
// expedite queue outside normal challan order.
func (r *ServiceRepository) GetUrgentPending() ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	err := r.db.Where("is_urgent = ? AND status = ?", true, "pending").
		Order("created_at").Find(&items).Error
	return items, err
}
