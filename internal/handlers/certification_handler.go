package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/certification-service/internal/services"
	"github.com/SAP-F-2025/certification-service/internal/utils"
	"github.com/SAP-F-2025/certification-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CertificationHandler struct {
	BaseHandler
	certificationService services.CertificationService
	answerService        services.AnswerService
	exportService        services.ExportService
	validator            *validator.Validator
}

func NewCertificationHandler(
	certificationService services.CertificationService,
	answerService services.AnswerService,
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *CertificationHandler {
	return &CertificationHandler{
		BaseHandler:          NewBaseHandler(logger),
		certificationService: certificationService,
		answerService:        answerService,
		exportService:        exportService,
		validator:            validator,
	}
}

// StartCertification starts a new certification for the authenticated user
// @Summary Start certification
// @Tags certification-courses
// @Accept json
// @Produce json
// @Param request body services.StartCertificationRequest true "Session"
// @Success 201 {object} SuccessResponse{data=models.CertificationCourse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /certification-courses [post]
func (h *CertificationHandler) StartCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.StartCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Starting certification", "session_id", req.SessionID)

	course, err := h.certificationService.StartNewCertification(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Certification started", course)
}

// GetCertificationResult returns the stored result of a certification
// @Summary Get certification result
// @Tags certification-courses
// @Produce json
// @Param id path uint true "Certification course ID"
// @Success 200 {object} SuccessResponse{data=models.CertificationResultView}
// @Failure 404 {object} ErrorResponse
// @Router /certification-courses/{id}/result [get]
func (h *CertificationHandler) GetCertificationResult(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	view, err := h.certificationService.GetCertificationResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Certification result retrieved", view)
}

// GetCertificationDetails scores a certification course without storing anything
// @Summary Compute certification details
// @Tags certification-courses
// @Produce json
// @Param id path uint true "Certification course ID"
// @Success 200 {object} SuccessResponse{data=models.CertificationResult}
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /certification-courses/{id}/details [get]
func (h *CertificationHandler) GetCertificationDetails(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.certificationService.CalculateCertificationResultByCertificationCourseID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Certification details computed", result)
}

// ComputeResult scores a certification and stores the assessment result
// @Summary Compute and store certification result
// @Tags certification-courses
// @Produce json
// @Param id path uint true "Certification course ID"
// @Success 201 {object} SuccessResponse{data=models.AssessmentResult}
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /certification-courses/{id}/results [post]
func (h *CertificationHandler) ComputeResult(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Computing certification result", "certification_course_id", id)

	result, err := h.certificationService.ComputeAndStoreResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Certification result stored", result)
}

// ExportCertificationResult downloads a completed certification as xlsx
// @Summary Export certification result
// @Tags certification-courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Certification course ID"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponse
// @Router /certification-courses/{id}/export [get]
func (h *CertificationHandler) ExportCertificationResult(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, err := h.exportService.ExportCertificationResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certification-%d.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetAssessmentCertificationDetails scores the certification run by an assessment
// @Summary Compute certification details by assessment
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} SuccessResponse{data=models.CertificationResult}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/certification-details [get]
func (h *CertificationHandler) GetAssessmentCertificationDetails(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.certificationService.CalculateCertificationResultByAssessmentID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Certification details computed", result)
}

// RecordAnswer appends an answer to a certification assessment
// @Summary Record answer
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path uint true "Assessment ID"
// @Param request body services.RecordAnswerRequest true "Answer"
// @Success 201 {object} SuccessResponse{data=models.Answer}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/answers [post]
func (h *CertificationHandler) RecordAnswer(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	answer, err := h.answerService.RecordAnswer(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Answer recorded", answer)
}
