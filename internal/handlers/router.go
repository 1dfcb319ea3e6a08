package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/metrics"
	"github.com/SAP-F-2025/certification-service/internal/services"
	"github.com/SAP-F-2025/certification-service/internal/utils"
	"github.com/SAP-F-2025/certification-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	certificationHandler *CertificationHandler
	health               Pinger
	metrics              *metrics.Metrics
	tokenParser          TokenParser
	logger               utils.Logger
}

type HandlerDeps struct {
	Certification services.CertificationService
	Answer        services.AnswerService
	Export        services.ExportService
	Validator     *validator.Validator
	Logger        utils.Logger
	Metrics       *metrics.Metrics
	Health        Pinger
	// TokenParser is nil when authentication is disabled
	TokenParser TokenParser
}

func NewHandlerManager(deps HandlerDeps) *HandlerManager {
	return &HandlerManager{
		certificationHandler: NewCertificationHandler(deps.Certification, deps.Answer, deps.Export, deps.Validator, deps.Logger),
		health:               deps.Health,
		metrics:              deps.Metrics,
		tokenParser:          deps.TokenParser,
		logger:               deps.Logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(RequestID(), utils.LoggerMiddleware(hm.logger))
	if hm.metrics != nil {
		router.Use(hm.metrics.Middleware())
		router.GET("/metrics", hm.metrics.Handler())
	}

	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1", AuthMiddleware(hm.tokenParser))
	{
		courses := v1.Group("/certification-courses")
		{
			courses.POST("", hm.certificationHandler.StartCertification)
			courses.GET("/:id/result", hm.certificationHandler.GetCertificationResult)
			courses.GET("/:id/details", hm.certificationHandler.GetCertificationDetails)
			courses.POST("/:id/results", hm.certificationHandler.ComputeResult)
			courses.GET("/:id/export", hm.certificationHandler.ExportCertificationResult)
		}

		assessments := v1.Group("/assessments")
		{
			assessments.GET("/:id/certification-details", hm.certificationHandler.GetAssessmentCertificationDetails)
			assessments.POST("/:id/answers", hm.certificationHandler.RecordAnswer)
		}
	}
}

// HealthCheck reports the service and its database
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if hm.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hm.health.Ping(ctx); err != nil {
			hm.logger.Warn("Health check failed", "error", err)
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "certification-service",
	})
}
