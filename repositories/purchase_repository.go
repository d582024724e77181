package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/allocation"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"
	"github.com/Mohanraj-TZ/vci-ui-sub000/utils"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db  *gorm.DB
	reg *registry.Registry
}

func NewPurchaseRepository(db *gorm.DB, reg *registry.Registry) *PurchaseRepository {
	return &PurchaseRepository{db: db, reg: reg}
}

func (r *PurchaseRepository) GeneratePurchaseNumber() (string, error) {
	var lastPurchase models.PurchaseInvoice
	if err := r.db.Last(&lastPurchase).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return utils.NextDocNumber("PI", lastPurchase.InvoiceNo, time.Now()), nil
}

// PurchaseRequest records units received from a vendor. Serials come in
// either as an explicit single serial or as a from/to range expanded at
// creation time.
type PurchaseRequest struct {
	VendorName    string
	InvoiceDate   *time.Time
	CategoryID    int64
	SerialNo      string
	FromSerial    string
	ToSerial      string
	ReceivedDate  *time.Time
	WarrantyStart *time.Time
	WarrantyEnd   *time.Time
	UnitCost      decimal.Decimal
	Remarks       string
	Actor         int
}

// CreatePurchase stores the invoice with one item per serial and
// registers every serial in the lifecycle registry. The registry
// registration is the last step inside the transaction, so a duplicate
// serial rolls the whole invoice back.
func (r *PurchaseRepository) CreatePurchase(req PurchaseRequest) (models.PurchaseInvoice, error) {
	var serials []string
	switch {
	case req.SerialNo != "":
		serials = []string{req.SerialNo}
	case req.FromSerial != "" && req.ToSerial != "":
		expanded, err := allocation.ExpandRange(req.FromSerial, req.ToSerial)
		if err != nil {
			return models.PurchaseInvoice{}, err
		}
		serials = expanded
	default:
		return models.PurchaseInvoice{}, fmt.Errorf("purchase needs a serial or a from/to range")
	}

	invoiceNo, err := r.GeneratePurchaseNumber()
	if err != nil {
		return models.PurchaseInvoice{}, err
	}

	invoice := models.PurchaseInvoice{
		InvoiceNo:   invoiceNo,
		VendorName:  req.VendorName,
		InvoiceDate: req.InvoiceDate,
		Remarks:     req.Remarks,
		CreatedBy:   req.Actor,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		toRegister := make([]registry.Serial, 0, len(serials))
		for _, no := range serials {
			item := models.PurchaseItem{
				PurchaseInvoiceID: invoice.ID,
				InvoiceNo:         invoiceNo,
				CategoryID:        req.CategoryID,
				SerialNo:          no,
				ReceivedDate:      req.ReceivedDate,
				WarrantyStart:     req.WarrantyStart,
				WarrantyEnd:       req.WarrantyEnd,
				UnitCost:          req.UnitCost,
				CreatedBy:         req.Actor,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			toRegister = append(toRegister, registry.Serial{SerialNo: no, CategoryID: req.CategoryID})

			if err := utils.InsertTransactionHistory(tx, invoiceNo, no, "received", "purchase",
				"received from "+req.VendorName, req.Actor); err != nil {
				return err
			}
		}

		// registry last: its rollback story is simpler than the DB's
		if _, err := r.reg.RegisterBatch(toRegister); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.PurchaseInvoice{}, err
	}

	return r.GetPurchase(int64(invoice.ID))
}

func (r *PurchaseRepository) GetPurchase(id int64) (models.PurchaseInvoice, error) {
	var invoice models.PurchaseInvoice
	err := r.db.Preload("Items").Where("id = ?", id).First(&invoice).Error
	return invoice, err
}

func (r *PurchaseRepository) GetAllPurchases() ([]models.PurchaseInvoice, error) {
	var invoices []models.PurchaseInvoice
	err := r.db.Preload("Items").Order("created_at desc").Find(&invoices).Error
	return invoices, err
}

// UpdateWarranty corrects the warranty window on one purchase item.
// Warranty status is always recomputed from these dates, never stored.
func (r *PurchaseRepository) UpdateWarranty(itemID int64, start, end *time.Time, actor int) error {
	res := r.db.Model(&models.PurchaseItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"warranty_start": start,
			"warranty_end":   end,
			"updated_by":     actor,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
