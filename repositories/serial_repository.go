package repositories

import (
	"fmt"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"gorm.io/gorm"
)

// SerialRepository persists registry state and serves the serial stock
// screens. It is the registry.Store implementation in production.
type SerialRepository struct {
	db *gorm.DB
}

func NewSerialRepository(db *gorm.DB) *SerialRepository {
	return &SerialRepository{db: db}
}

func (r *SerialRepository) LoadAll() ([]registry.Serial, error) {
	var rows []models.Serial
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]registry.Serial, 0, len(rows))
	for _, row := range rows {
		out = append(out, registry.Serial{
			SerialNo:   row.SerialNo,
			CategoryID: row.CategoryID,
			Stage:      registry.Stage(row.Stage),
			StageRef:   row.StageRef,
			PrevStage:  registry.Stage(row.PrevStage),
			PrevRef:    row.PrevRef,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (r *SerialRepository) InsertBatch(serials []registry.Serial) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, s := range serials {
			row := models.Serial{
				SerialNo:   s.SerialNo,
				CategoryID: s.CategoryID,
				Stage:      string(s.Stage),
				StageRef:   s.StageRef,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SerialRepository) UpdateBatch(serials []registry.Serial) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, s := range serials {
			res := tx.Model(&models.Serial{}).
				Where("serial_no = ?", s.SerialNo).
				Updates(map[string]interface{}{
					"stage":      string(s.Stage),
					"stage_ref":  s.StageRef,
					"prev_stage": string(s.PrevStage),
					"prev_ref":   s.PrevRef,
					"updated_at": time.Now().UTC(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("serial %s missing from serials table", s.SerialNo)
			}
		}
		return nil
	})
}

type serialStockRow struct {
	CategoryCode string `json:"category_code"`
	CategoryName string `json:"category_name"`
	Stage        string `json:"stage"`
	Quantity     int    `json:"quantity"`
}

// GetSerialStock summarizes registered serials per category and stage.
func (r *SerialRepository) GetSerialStock() ([]serialStockRow, error) {
	sqlStock := `select c.code as category_code, c.name as category_name,
	s.stage, count(*) as quantity
	from serials s
	inner join categories c on s.category_id = c.id
	where s.deleted_at is null
	group by c.code, c.name, s.stage
	order by c.code, s.stage
	`

	var rows []serialStockRow
	if err := r.db.Raw(sqlStock).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type serialListRow struct {
	SerialNo     string `json:"serial_no"`
	CategoryCode string `json:"category_code"`
	Stage        string `json:"stage"`
	StageRef     string `json:"stage_ref"`
	CreatedAt    string `json:"created_at"`
}

// ListSerials returns the flat serial list, optionally filtered by stage.
func (r *SerialRepository) ListSerials(stage string) ([]serialListRow, error) {
	q := r.db.Table("serials s").
		Select("s.serial_no, c.code as category_code, s.stage, s.stage_ref, s.created_at").
		Joins("inner join categories c on s.category_id = c.id").
		Where("s.deleted_at is null")
	if stage != "" {
		q = q.Where("s.stage = ?", stage)
	}

	var rows []serialListRow
	if err := q.Order("s.serial_no").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SerialRepository) GetCategoryByCode(code string) (models.Category, error) {
	var category models.Category
	err := r.db.Where("code = ?", code).First(&category).Error
	return category, err
}

func (r *SerialRepository) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("code").Find(&categories).Error
	return categories, err
}
