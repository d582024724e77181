package repositories

import (
	"fmt"

	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"gorm.io/gorm"
)

type SparePartRepository struct {
	db *gorm.DB
}

func NewSparePartRepository(db *gorm.DB) *SparePartRepository {
	return &SparePartRepository{db: db}
}

func (r *SparePartRepository) GetAllSpareParts() ([]models.SparePart, error) {
	var parts []models.SparePart
	err := r.db.Order("part_code").Find(&parts).Error
	return parts, err
}

func (r *SparePartRepository) GetByPartCode(code string) (models.SparePart, error) {
	var part models.SparePart
	err := r.db.Where("part_code = ?", code).First(&part).Error
	return part, err
}

func (r *SparePartRepository) CreateSparePart(part *models.SparePart) error {
	return r.db.Create(part).Error
}

// AdjustStock adds or removes stock. Negative deltas use a guarded update
// so two concurrent adjustments cannot take the balance below zero.
func (r *SparePartRepository) AdjustStock(partCode string, delta int, actor int) (models.SparePart, error) {
	var part models.SparePart
	if err := r.db.Where("part_code = ?", partCode).First(&part).Error; err != nil {
		return models.SparePart{}, err
	}

	q := r.db.Model(&models.SparePart{}).Where("id = ?", part.ID)
	if delta < 0 {
		q = q.Where("balance >= ?", -delta)
	}
	res := q.Updates(map[string]interface{}{
		"balance":    gorm.Expr("balance + ?", delta),
		"updated_by": actor,
	})
	if res.Error != nil {
		return models.SparePart{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.SparePart{}, fmt.Errorf("spare part %s: %w", partCode, ErrInsufficientStock)
	}

	return r.GetByPartCode(partCode)
}
