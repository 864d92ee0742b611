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

// StudentHandler handles student-related HTTP requests
type StudentHandler struct {
	studentService   *service.StudentService
	ledgerService    *service.LedgerService
	promotionService *service.PromotionService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(
	studentService *service.StudentService,
	ledgerService *service.LedgerService,
	promotionService *service.PromotionService,
) *StudentHandler {
	return &StudentHandler{
		studentService:   studentService,
		ledgerService:    ledgerService,
		promotionService: promotionService,
	}
}

// List handles listing students
func (h *StudentHandler) List(c *gin.Context) {
	params := &repository.StudentFilterParams{
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
		ClassName:    c.Query("class_name"),
		Section:      c.Query("section"),
		AcademicYear: c.Query("academic_year"),
		IsActive:     boolQuery(c, "is_active"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}

	result, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Students retrieved successfully", result)
}

// Create handles admitting a student
func (h *StudentHandler) Create(c *gin.Context) {
	var req struct {
		FirstName       string `json:"first_name" binding:"required"`
		LastName        string `json:"last_name"`
		AdmissionNumber string `json:"admission_number" binding:"required"`
		ClassName       string `json:"class_name" binding:"required"`
		Section         string `json:"section"`
		AcademicYear    string `json:"academic_year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	student, err := h.studentService.AdmitStudent(c.Request.Context(), &service.AdmitStudentInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		ClassName:       req.ClassName,
		Section:         req.Section,
		AcademicYear:    req.AcademicYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student admitted successfully", student)
}

// Get handles getting a single student
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student retrieved successfully", student)
}

// Update handles updating a student
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		ClassName *string `json:"class_name"`
		Section   *string `json:"section"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), &service.UpdateStudentInput{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ClassName: req.ClassName,
		Section:   req.Section,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student updated successfully", student)
}

// Deactivate handles retiring a student
func (h *StudentHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.DeactivateStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLedger handles fetching the student's full financial picture
func (h *StudentHandler) GetLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	ledger, err := h.ledgerService.GetStudentLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student ledger retrieved successfully", ledger)
}

// AssignStructure handles assigning the active fee structure to a student
func (h *StudentHandler) AssignStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.ledgerService.AssignFeeStructure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure assigned successfully", student)
}

// ApplyDiscount handles granting a discount to a student
func (h *StudentHandler) ApplyDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		Type       enum.DiscountType `json:"type" binding:"required"`
		Value      int64             `json:"value" binding:"required"`
		ValidFrom  *time.Time        `json:"valid_from"`
		ValidTo    *time.Time        `json:"valid_to"`
		Reason     string            `json:"reason"`
		ApprovedBy string            `json:"approved_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	discount, err := h.ledgerService.ApplyDiscount(c.Request.Context(), id, &service.ApplyDiscountInput{
		Type:       req.Type,
		Value:      req.Value,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		Reason:     req.Reason,
		ApprovedBy: req.ApprovedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount applied successfully", discount)
}

// CarryForward handles closing the student's ledger into the next year
func (h *StudentHandler) CarryForward(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		ToAcademicYear string `json:"to_academic_year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	student, err := h.ledgerService.CarryForward(c.Request.Context(), id, req.ToAcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance carried forward successfully", student)
}

// Promote handles promoting a single student
func (h *StudentHandler) Promote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		ToAcademicYear string `json:"to_academic_year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	student, err := h.promotionService.PromoteStudent(c.Request.Context(), id, req.ToAcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student promoted successfully", student)
}
