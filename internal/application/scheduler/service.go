package scheduler

import (
	"context"
	"strings"
	"unicode"

	"log/slog"

	"github.com/suminyol/AyurSutra/internal/domain/schedule"
	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// Service 排程生成服务
// 单请求管线：检索 → 提示词装配 → 生成 → 校验/修复，跨请求无共享可变状态
type Service struct {
	retriever   *Retriever
	assembler   *Assembler
	synthesizer *Synthesizer
	validator   *Validator
	maxAttempts int
	logger      *slog.Logger
}

// NewService 创建排程生成服务
func NewService(
	retriever *Retriever,
	assembler *Assembler,
	synthesizer *Synthesizer,
	validator *Validator,
	cfg *config.PipelineConfig,
) *Service {
	maxAttempts := cfg.MaxRepairAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &Service{
		retriever:   retriever,
		assembler:   assembler,
		synthesizer: synthesizer,
		validator:   validator,
		maxAttempts: maxAttempts,
		logger:      log.NewModuleLogger("scheduler", "service"),
	}
}

// GenerateSchedule 将患者描述转换为经过校验的日程安排
// 绝不返回未通过全部检查的排程；修复预算耗尽时返回 ValidationExhaustedError
func (s *Service) GenerateSchedule(ctx context.Context, query string) (*schedule.Schedule, error) {
	query = strings.TrimSpace(query)
	if !isMeaningfulQuery(query) {
		return nil, ErrMalformedInput
	}

	passages, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generating schedule",
		"query_length", len(query),
		"passages", len(passages),
	)

	var violations []string
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		userPrompt := s.assembler.Assemble(query, passages, violations)

		raw, err := s.synthesizer.Synthesize(ctx, s.assembler.SystemPrompt(), userPrompt)
		if err != nil {
			// 传输层失败立即上抛，不消耗修复预算
			return nil, err
		}

		verdict := s.validator.Validate(raw)
		if verdict.Valid() {
			s.logger.Info("Schedule accepted",
				"attempt", attempt,
				"days", verdict.Schedule.Length(),
				"repairs", len(verdict.Repairs),
			)
			return verdict.Schedule, nil
		}

		violations = verdict.Violations
		s.logger.Warn("Candidate rejected, re-prompting with violations",
			"attempt", attempt,
			"max_attempts", s.maxAttempts,
			"stage", string(verdict.Stage),
			"violations", len(violations),
		)
	}

	return nil, &ValidationExhaustedError{
		Attempts:   s.maxAttempts,
		Violations: violations,
	}
}

// isMeaningfulQuery 患者描述至少要包含一个字母或数字
func isMeaningfulQuery(query string) bool {
	if query == "" {
		return false
	}
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
