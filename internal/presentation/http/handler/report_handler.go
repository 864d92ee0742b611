package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// ReportHandler handles collection report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Overview handles the collection overview report
func (h *ReportHandler) Overview(c *gin.Context) {
	academicYear := c.Query("academic_year")
	if academicYear == "" {
		response.BadRequest(c, "Academic year is required")
		return
	}

	overview, err := h.reportService.GetCollectionOverview(
		c.Request.Context(), academicYear, c.Query("class_name"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Collection overview retrieved successfully", overview)
}

// ByClass handles the per-class collection report
func (h *ReportHandler) ByClass(c *gin.Context) {
	academicYear := c.Query("academic_year")
	if academicYear == "" {
		response.BadRequest(c, "Academic year is required")
		return
	}

	rows, err := h.reportService.GetCollectionByClass(c.Request.Context(), academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Class collection report retrieved successfully", rows)
}

// BySection handles the per-section collection report for one class
func (h *ReportHandler) BySection(c *gin.Context) {
	academicYear := c.Query("academic_year")
	className := c.Query("class_name")
	if academicYear == "" || className == "" {
		response.BadRequest(c, "Academic year and class name are required")
		return
	}

	rows, err := h.reportService.GetCollectionBySection(c.Request.Context(), academicYear, className)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Section collection report retrieved successfully", rows)
}

// Defaulters handles the defaulter list report
func (h *ReportHandler) Defaulters(c *gin.Context) {
	academicYear := c.Query("academic_year")
	if academicYear == "" {
		response.BadRequest(c, "Academic year is required")
		return
	}

	defaulters, err := h.reportService.GetDefaulters(
		c.Request.Context(), academicYear, c.Query("class_name"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Defaulters retrieved successfully", defaulters)
}

// Daily handles the daily collection report
func (h *ReportHandler) Daily(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	report, err := h.reportService.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// Monthly handles the monthly collection report
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(c, "Invalid month")
			return
		}
		month = time.Month(parsed)
	}

	report, err := h.reportService.GetMonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report retrieved successfully", report)
}
