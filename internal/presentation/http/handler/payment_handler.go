package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	ledgerService *service.LedgerService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(ledgerService *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{ledgerService: ledgerService}
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
		AcademicYear: c.Query("academic_year"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}

	if raw := c.Query("student_id"); raw != "" {
		studentID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid student ID")
			return
		}
		params.StudentID = &studentID
	}
	if raw := c.Query("method"); raw != "" {
		method := enum.PaymentMethod(raw)
		if !method.IsValid() {
			response.BadRequest(c, "Invalid payment method")
			return
		}
		params.Method = &method
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.PaymentStatus(raw)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid payment status")
			return
		}
		params.Status = &status
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &t
	}

	result, err := h.ledgerService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Create handles recording a payment
func (h *PaymentHandler) Create(c *gin.Context) {
	var req struct {
		StudentID uuid.UUID `json:"student_id" binding:"required"`
		LineItems []struct {
			FeeType string `json:"fee_type" binding:"required"`
			Amount  int64  `json:"amount" binding:"required"`
		} `json:"line_items"`
		TotalAmount int64              `json:"total_amount" binding:"required"`
		Method      enum.PaymentMethod `json:"method" binding:"required"`
		PaymentDate *time.Time         `json:"payment_date"`
		Remarks     string             `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	input := &service.RecordPaymentInput{
		StudentID:   req.StudentID,
		TotalAmount: req.TotalAmount,
		Method:      req.Method,
		Remarks:     req.Remarks,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}
	for _, item := range req.LineItems {
		input.LineItems = append(input.LineItems, service.PaymentLineItemInput{
			FeeType: item.FeeType,
			Amount:  item.Amount,
		})
	}
	if userID := GetUserID(c); userID != nil {
		input.CollectedBy = userID.String()
	}

	payment, err := h.ledgerService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.ledgerService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// GetByReceipt handles looking a payment up by receipt number
func (h *PaymentHandler) GetByReceipt(c *gin.Context) {
	receiptNumber := c.Param("receipt")
	if receiptNumber == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	payment, err := h.ledgerService.GetPaymentByReceipt(c.Request.Context(), receiptNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// Cancel handles cancelling a payment receipt
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.ledgerService.CancelPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment cancelled successfully", payment)
}
