package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

type ReportService interface {
	// ExportOrdersXLSX renders recent orders into a spreadsheet for the
	// back-office orders screen.
	ExportOrdersXLSX(filter repository.OrderFilter) (*bytes.Buffer, error)
	// ExportSalaryXLSX renders the employee salary sheet.
	ExportSalaryXLSX() (*bytes.Buffer, error)
}

type reportService struct {
	orderRepo      repository.OrderRepository
	departmentRepo repository.DepartmentRepository
}

func NewReportService(orderRepo repository.OrderRepository, departmentRepo repository.DepartmentRepository) ReportService {
	return &reportService{
		orderRepo:      orderRepo,
		departmentRepo: departmentRepo,
	}
}

var orderSheetHeaders = []string{
	"Order Number", "Customer ID", "Status", "Payment Status",
	"Items", "Discount", "Total", "Coupon", "Created At",
}

func (s *reportService) ExportOrdersXLSX(filter repository.OrderFilter) (*bytes.Buffer, error) {
	logger.Info("Exporting orders to XLSX", map[string]interface{}{
		"status": filter.Status,
	})

	orders, err := s.orderRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to fetch orders for export", err)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range orderSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, order := range orders {
		row := i + 2
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
		values := []interface{}{
			order.OrderNumber,
			order.UserID,
			string(order.Status),
			string(order.PaymentStatus),
			itemCount,
			order.DiscountTotal,
			order.TotalAmount,
			order.CouponCode,
			order.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write orders spreadsheet", err)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
	return buf, nil
}

func (s *reportService) ExportSalaryXLSX() (*bytes.Buffer, error) {
	logger.Info("Exporting salary sheet to XLSX", nil)

	employees, err := s.departmentRepo.FindEmployees(nil)
	if err != nil {
		logger.Error("Failed to fetch employees for export", err)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Salaries"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Name", "Email", "Department", "Position", "Salary", "Joined At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	var total float64
	for i, employee := range employees {
		row := i + 2
		values := []interface{}{
			employee.Name,
			employee.Email,
			employee.Department.Name,
			employee.Position,
			employee.Salary,
			employee.JoinedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		total += employee.Salary
	}

	totalRow := len(employees) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write salary spreadsheet", err)
		return nil, err
	}
	return buf, nil
}
