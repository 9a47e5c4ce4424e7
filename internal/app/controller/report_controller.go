package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// ExportOrders downloads the order report as an XLSX file
// GET /api/v1/admin/reports/orders?status=delivered
func (ctrl *ReportController) ExportOrders(c *gin.Context) {
	filter := repository.OrderFilter{}
	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		filter.Status = &status
	}

	buf, err := ctrl.reportService.ExportOrdersXLSX(filter)
	if err != nil {
		logger.Error("Failed to export orders report", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export orders"})
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSalaries downloads the salary report as an XLSX file
// GET /api/v1/admin/reports/salaries
func (ctrl *ReportController) ExportSalaries(c *gin.Context) {
	buf, err := ctrl.reportService.ExportSalaryXLSX()
	if err != nil {
		logger.Error("Failed to export salary report", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export salaries"})
		return
	}

	filename := fmt.Sprintf("salaries_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
