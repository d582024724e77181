package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"
)

func TestMarkDamagedByPurchaseItem(t *testing.T) {
	db := openTestDB(t)

	category := models.Category{Code: fmt.Sprintf("D%d", time.Now().UnixNano()%1e6), Name: "damage category"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	reg, err := registry.Open(NewSerialRepository(db))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	serialNo := fmt.Sprintf("PCB-%d", time.Now().UnixNano())
	if _, err := reg.Register(serialNo, category.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	item := models.PurchaseItem{
		InvoiceNo:  "PI2509010001",
		CategoryID: category.ID,
		SerialNo:   serialNo,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create purchase item: %v", err)
	}

	// No serial in the request: the repository resolves it from the item.
	repo := NewDamageRepository(db, reg)
	record, err := repo.MarkDamaged(DamageRequest{
		PurchaseItemID: item.ID,
		Remarks:        "cracked board",
	})
	if err != nil {
		t.Fatalf("MarkDamaged: %v", err)
	}
	if record.SerialNo != serialNo {
		t.Errorf("record serial = %s, want %s", record.SerialNo, serialNo)
	}

	s, err := reg.Lookup(serialNo)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.Stage != registry.StageDamaged {
		t.Errorf("stage after damage = %s, want damaged", s.Stage)
	}
}

func TestMarkDamagedNeedsIdentifier(t *testing.T) {
	db := openTestDB(t)

	reg, err := registry.Open(NewSerialRepository(db))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	repo := NewDamageRepository(db, reg)
	if _, err := repo.MarkDamaged(DamageRequest{Remarks: "no unit given"}); err == nil {
		t.Error("MarkDamaged with no serial and no purchase item: expected error")
	}
}
