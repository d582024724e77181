package repositories

import (
	"context"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/timeline"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"gorm.io/gorm"
)

// Timeline sources, one per subsystem that may reference a serial. All
// read-only; the aggregator runs them in parallel with a timeout each.

func NewTimelineSources(db *gorm.DB) []timeline.Source {
	return []timeline.Source{
		&purchaseSource{db: db},
		&productSource{db: db},
		&saleSource{db: db},
		&damageSource{db: db},
		&serviceSource{db: db},
	}
}

type purchaseSource struct{ db *gorm.DB }

func (s *purchaseSource) Name() string { return timeline.SubsystemPurchase }

func (s *purchaseSource) Events(ctx context.Context, serialNo string) ([]timeline.Event, error) {
	var items []models.PurchaseItem
	if err := s.db.WithContext(ctx).Where("serial_no = ?", serialNo).Find(&items).Error; err != nil {
		return nil, err
	}

	var events []timeline.Event
	for _, item := range items {
		var invoice models.PurchaseInvoice
		at := item.CreatedAt
		if err := s.db.WithContext(ctx).Where("id = ?", item.PurchaseInvoiceID).First(&invoice).Error; err == nil {
			if invoice.InvoiceDate != nil {
				at = *invoice.InvoiceDate
			}
		}
		events = append(events, timeline.Event{
			Subsystem: timeline.SubsystemPurchase,
			Kind:      "purchased",
			SerialNo:  serialNo,
			RefNo:     item.InvoiceNo,
			Detail:    "received from " + invoice.VendorName,
			At:        at,
		})
	}
	return events, nil
}

type productSource struct{ db *gorm.DB }

func (s *productSource) Name() string { return timeline.SubsystemProduct }

func (s *productSource) Events(ctx context.Context, serialNo string) ([]timeline.Event, error) {
	var serial models.Serial
	err := s.db.WithContext(ctx).Where("serial_no = ?", serialNo).First(&serial).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []timeline.Event{{
		Subsystem: timeline.SubsystemProduct,
		Kind:      "registered",
		SerialNo:  serialNo,
		Detail:    "serial registered",
		At:        serial.CreatedAt,
	}}, nil
}

type saleSource struct{ db *gorm.DB }

func (s *saleSource) Name() string { return timeline.SubsystemSale }

func (s *saleSource) Events(ctx context.Context, serialNo string) ([]timeline.Event, error) {
	var items []models.SaleItem
	if err := s.db.WithContext(ctx).Where("serial_no = ?", serialNo).Find(&items).Error; err != nil {
		return nil, err
	}

	var events []timeline.Event
	for _, item := range items {
		var invoice models.SaleInvoice
		at := item.CreatedAt
		if err := s.db.WithContext(ctx).Where("id = ?", item.SaleInvoiceID).First(&invoice).Error; err == nil {
			if invoice.InvoiceDate != nil {
				at = *invoice.InvoiceDate
			}
		}
		events = append(events, timeline.Event{
			Subsystem: timeline.SubsystemSale,
			Kind:      "sold",
			SerialNo:  serialNo,
			RefNo:     item.InvoiceNo,
			Detail:    "sold to " + invoice.CustomerName,
			At:        at,
		})
		if item.ReturnedAt != nil {
			events = append(events, timeline.Event{
				Subsystem: timeline.SubsystemSale,
				Kind:      "sale_returned",
				SerialNo:  serialNo,
				RefNo:     item.InvoiceNo,
				Detail:    "sale return",
				At:        *item.ReturnedAt,
			})
		}
	}
	return events, nil
}

type damageSource struct{ db *gorm.DB }

func (s *damageSource) Name() string { return timeline.SubsystemDamage }

func (s *damageSource) Events(ctx context.Context, serialNo string) ([]timeline.Event, error) {
	var records []models.DamageRecord
	if err := s.db.WithContext(ctx).Where("serial_no = ?", serialNo).Find(&records).Error; err != nil {
		return nil, err
	}

	var events []timeline.Event
	for _, rec := range records {
		at := rec.CreatedAt
		if rec.ReportedAt != nil {
			at = *rec.ReportedAt
		}
		events = append(events, timeline.Event{
			Subsystem: timeline.SubsystemDamage,
			Kind:      "damaged",
			SerialNo:  serialNo,
			RefNo:     rec.Status,
			Detail:    rec.Remarks,
			At:        at,
		})
	}
	return events, nil
}

type serviceSource struct{ db *gorm.DB }

func (s *serviceSource) Name() string { return timeline.SubsystemService }

// Events reports one event per challan touching the serial, plus the
// challan's movement hops and the item's repair history as sub-events.
func (s *serviceSource) Events(ctx context.Context, serialNo string) ([]timeline.Event, error) {
	var items []models.ServiceItem
	if err := s.db.WithContext(ctx).Where("vci_serial_no = ?", serialNo).Find(&items).Error; err != nil {
		return nil, err
	}

	var events []timeline.Event
	for _, item := range items {
		var challan models.Challan
		at := item.CreatedAt
		if err := s.db.WithContext(ctx).Where("id = ?", item.ChallanID).First(&challan).Error; err == nil {
			if challan.ChallanDate != nil {
				at = *challan.ChallanDate
			}
		}
		events = append(events, timeline.Event{
			Subsystem: timeline.SubsystemService,
			Kind:      "challan_sent",
			SerialNo:  serialNo,
			RefNo:     item.ChallanNo,
			Detail:    item.IssueFound,
			At:        at,
		})

		var movements []models.ChallanMovement
		if err := s.db.WithContext(ctx).Where("challan_id = ?", item.ChallanID).Find(&movements).Error; err != nil {
			return nil, err
		}
		for _, mv := range movements {
			movedAt := mv.CreatedAt
			if mv.MovedAt != nil {
				movedAt = *mv.MovedAt
			}
			events = append(events, timeline.Event{
				Subsystem: timeline.SubsystemService,
				Kind:      "challan_" + mv.Status,
				SerialNo:  serialNo,
				RefNo:     item.ChallanNo,
				Detail:    mv.Remarks,
				At:        movedAt,
			})
		}

		var repairs []models.RepairHistory
		if err := s.db.WithContext(ctx).Where("service_item_id = ?", item.ID).Find(&repairs).Error; err != nil {
			return nil, err
		}
		for _, rep := range repairs {
			events = append(events, timeline.Event{
				Subsystem: timeline.SubsystemService,
				Kind:      "repaired",
				SerialNo:  serialNo,
				RefNo:     item.ChallanNo,
				Detail:    rep.Action,
				At:        rep.CreatedAt,
			})
		}
	}
	return events, nil
}
