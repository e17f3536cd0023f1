package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/service"
)

// AnalyticsHandler serves the admin dashboard and order export.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Summary returns the headline counters.
// GET /api/analytics (admin)
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Summary()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DailySales aggregates orders per day over a date range.
// GET /api/analytics/daily-sales?from=2026-02-01&to=2026-02-28 (admin)
func (h *AnalyticsHandler) DailySales(c *gin.Context) {
	from, to, err := dailySalesRange(c.Query("from"), c.Query("to"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := h.analyticsService.DailySales(from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_sales": sales})
}

// dailySalesRange resolves the query dates, defaulting to the last 30 days.
// An explicit "to" names a whole day, so it is extended to the end of that day
// to keep the range inclusive on both sides.
func dailySalesRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	to := now
	from := now.AddDate(0, 0, -30)

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("Invalid 'from' date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("Invalid 'to' date, expected YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return from, to, nil
}

// ExportOrders exports every order as CSV or Excel.
// GET /api/analytics/export?format=csv|xlsx (admin)
func (h *AnalyticsHandler) ExportOrders(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	orders, err := h.analyticsService.AllOrders()
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("orders_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, orders, filename)
	default:
		h.exportCSV(c, orders, filename)
	}
}

var exportHeaders = []string{"Order ID", "User ID", "Items", "Subtotal", "Discount", "Total", "Coupon", "Status", "Date"}

func orderItemsSummary(order *entity.Order) string {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return strconv.Itoa(count)
}

// exportCSV writes orders as CSV, escaping via encoding/csv.
func (h *AnalyticsHandler) exportCSV(c *gin.Context, orders []entity.Order, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel detects UTF-8
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for i := range orders {
		o := &orders[i]
		writer.Write([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			strconv.FormatUint(uint64(o.UserID), 10),
			orderItemsSummary(o),
			fmt.Sprintf("%.2f", o.Subtotal),
			fmt.Sprintf("%.2f", o.DiscountAmount),
			fmt.Sprintf("%.2f", o.Total),
			sanitizeForExcel(o.CouponCode),
			o.Status,
			o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
}

// exportXLSX writes orders with excelize's StreamWriter.
func (h *AnalyticsHandler) exportXLSX(c *gin.Context, orders []entity.Order, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orders"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AnalyticsHandler] Failed to create StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, hdr := range exportHeaders {
		headers[i] = hdr
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AnalyticsHandler] Failed to write headers: %v", err)
	}

	for i := range orders {
		o := &orders[i]
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			o.ID,
			o.UserID,
			orderItemsSummary(o),
			o.Subtotal,
			o.DiscountAmount,
			o.Total,
			sanitizeForExcel(o.CouponCode),
			o.Status,
			o.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AnalyticsHandler] Failed to write row %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AnalyticsHandler] Flush failed: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AnalyticsHandler] Failed to write Excel response: %v", err)
	}
}

// sanitizeForExcel guards exported cells against formula injection.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
