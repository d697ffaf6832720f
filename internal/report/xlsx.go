package report

import (
	"fmt"
	"io"
	"time"

	"equipment-tracker/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName   = "Активные заявки"
	dateFormat  = "02.01.2006 15:04"
)

var activeRequestHeaders = []interface{}{
	"№", "ID заявки", "Логин", "ФИО", "Тип оборудования", "Инвентарный номер", "Статус", "Дата создания",
}

// FileName возвращает имя файла выгрузки на указанную дату
func FileName(now time.Time) string {
	return fmt.Sprintf("active_requests_%s.xlsx", now.Format("2006-01-02"))
}

// WriteActiveRequests пишет очередь заявок в w в формате XLSX, по строке на заявку
func WriteActiveRequests(w io.Writer, items []models.ActiveRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &activeRequestHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(activeRequestHeaders))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			item.ID,
			item.Username,
			item.FullName,
			item.EquipmentType,
			item.InventoryID,
			item.Status.Label(),
			item.CreatedAt.Local().Format(dateFormat),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(sheetName, "C", "D", 25)
	_ = f.SetColWidth(sheetName, "E", "H", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
