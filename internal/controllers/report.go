package controllers

import (
	"fmt"
	"net/http"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewReportController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{equipmentService: equipmentService, logger: logger}
}

var equipmentReportHeaders = []string{
	"ID", "Название", "Серийный номер", "Категория (ID)", "Подразделение (ID)",
	"Локация", "Дата покупки", "Гарантия до", "Команда (ID)", "Техник (ID)",
	"Статус", "Дата списания", "Примечания",
}

func equipmentRowToSlice(item entities.Equipment) []interface{} {
	dateFmt := "02.01.2006"
	fmtDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dateFmt)
	}
	fmtID := func(id *uint64) interface{} {
		if id == nil {
			return ""
		}
		return *id
	}

	return []interface{}{
		item.ID, item.Name, item.SerialNumber, item.CategoryID, fmtID(item.DepartmentID),
		utils.SafeDeref(item.Location), fmtDate(item.PurchaseDate), fmtDate(item.WarrantyExpiryDate),
		fmtID(item.MaintenanceTeamID), fmtID(item.DefaultTechnicianID),
		item.Status, fmtDate(item.ScrapDate), utils.SafeDeref(item.Notes),
	}
}

// ExportEquipment выгружает весь парк оборудования в xlsx.
func (c *ReportController) ExportEquipment(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	c.applyStatusFilter(ctx, &filter)

	items, _, err := c.equipmentService.GetEquipment(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Оборудование"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &equipmentReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "M1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := equipmentRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "F", "F", 20)
	f.SetColWidth(sheet, "M", "M", 40)

	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *ReportController) applyStatusFilter(ctx echo.Context, filter *types.Filter) {
	if status := ctx.QueryParam("status"); status != "" {
		if filter.Filter == nil {
			filter.Filter = map[string]interface{}{}
		}
		filter.Filter["status"] = status
	}
}
