package handler

import (
	"context"
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/suminyol/AyurSutra/internal/application/scheduler"
	"github.com/suminyol/AyurSutra/internal/domain/schedule"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// ScheduleGenerator 排程生成入口
type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, query string) (*schedule.Schedule, error)
}

var _ ScheduleGenerator = (*scheduler.Service)(nil)

// ScheduleHandler 排程生成处理器
type ScheduleHandler struct {
	service ScheduleGenerator
	logger  *slog.Logger
}

// NewScheduleHandler 创建排程处理器
func NewScheduleHandler(service *scheduler.Service) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  log.NewModuleLogger("http", "schedule_handler"),
	}
}

// GenerateRequest 排程生成请求
type GenerateRequest struct {
	Message string `json:"message" binding:"required"`
}

// Generate 处理排程生成请求
// POST /api/v1/schedule（兼容路径 POST /chat）
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, err := h.service.GenerateSchedule(c.Request.Context(), req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule": sched.Days,
	})
}

// respondError 错误分类到 HTTP 状态码
func (h *ScheduleHandler) respondError(c *gin.Context, err error) {
	var retrievalErr *scheduler.RetrievalError
	var synthesisErr *scheduler.SynthesisError
	var exhaustedErr *scheduler.ValidationExhaustedError

	switch {
	case errors.Is(err, scheduler.ErrMalformedInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must contain a non-empty symptom description"})

	case errors.As(err, &retrievalErr):
		h.logger.Error("Retrieval failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "reference corpus retrieval failed"})

	case errors.As(err, &synthesisErr):
		h.logger.Error("Synthesis failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "schedule synthesis failed"})

	case errors.As(err, &exhaustedErr):
		h.logger.Warn("Validation exhausted",
			"attempts", exhaustedErr.Attempts,
			"violations", exhaustedErr.Violations,
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "could not produce a schedule satisfying all constraints",
			"violations": exhaustedErr.Violations,
		})

	default:
		h.logger.Error("Unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
