package controllers

import (
	"fmt"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

func (c *ReportController) GetSerialStock(ctx *fiber.Ctx) error {
	serialRepo := repositories.NewSerialRepository(c.DB)
	rows, err := serialRepo.GetSerialStock()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"stock": rows}})
}

// ExportSerialStock writes the stock summary as an xlsx pivot, one row
// per category with a column per lifecycle stage.
func (c *ReportController) ExportSerialStock(ctx *fiber.Ctx) error {
	serialRepo := repositories.NewSerialRepository(c.DB)
	rows, err := serialRepo.GetSerialStock()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type categoryStock struct {
		name   string
		counts map[string]int
	}
	byCategory := make(map[string]*categoryStock)
	stageSet := make(map[string]bool)
	for _, row := range rows {
		cs, ok := byCategory[row.CategoryCode]
		if !ok {
			cs = &categoryStock{name: row.CategoryName, counts: make(map[string]int)}
			byCategory[row.CategoryCode] = cs
		}
		cs.counts[row.Stage] += row.Quantity
		stageSet[row.Stage] = true
	}

	categories := maps.Keys(byCategory)
	slices.Sort(categories)
	stages := maps.Keys(stageSet)
	slices.Sort(stages)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Serial Stock"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := append([]string{"Category Code", "Category Name"}, stages...)
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	for r, code := range categories {
		cs := byCategory[code]
		total := 0
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r+2), code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r+2), cs.name)
		for i, stage := range stages {
			cell, _ := excelize.CoordinatesToCellName(i+3, r+2)
			f.SetCellValue(sheet, cell, cs.counts[stage])
			total += cs.counts[stage]
		}
		cell, _ := excelize.CoordinatesToCellName(len(headers), r+2)
		f.SetCellValue(sheet, cell, total)
	}

	f.SetColWidth(sheet, "A", "B", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filename := fmt.Sprintf("serial_stock_%s.xlsx", time.Now().Format("20060102"))
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}
