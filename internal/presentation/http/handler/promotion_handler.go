package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// PromotionHandler handles cohort promotion HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// PromoteCohort handles promoting a class cohort into the next academic year
func (h *PromotionHandler) PromoteCohort(c *gin.Context) {
	var req struct {
		FromAcademicYear string `json:"from_academic_year" binding:"required"`
		ToAcademicYear   string `json:"to_academic_year" binding:"required"`
		ClassName        string `json:"class_name" binding:"required"`
		Section          string `json:"section"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.promotionService.PromoteCohort(
		c.Request.Context(), req.FromAcademicYear, req.ToAcademicYear, req.ClassName, req.Section)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cohort promoted successfully", result)
}

// PromoteStudents handles promoting an explicit list of students
func (h *PromotionHandler) PromoteStudents(c *gin.Context) {
	var req struct {
		StudentIDs     []uuid.UUID `json:"student_ids" binding:"required,min=1"`
		ToAcademicYear string      `json:"to_academic_year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.promotionService.PromoteStudents(c.Request.Context(), req.StudentIDs, req.ToAcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Students promoted successfully", result)
}
