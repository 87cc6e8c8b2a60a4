package scheduler

import (
	"context"

	"log/slog"

	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// ChatCompleter 生成模型调用接口
type ChatCompleter interface {
	ChatJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer 排程生成器
// 模型输出视为不可信，必须经过 Validator 才能接受；本层不做重试，
// 重试策略由修复环路驱动
type Synthesizer struct {
	llm    ChatCompleter
	logger *slog.Logger
}

// NewSynthesizer 创建排程生成器
func NewSynthesizer(llm ChatCompleter) *Synthesizer {
	return &Synthesizer{
		llm:    llm,
		logger: log.NewModuleLogger("scheduler", "synthesizer"),
	}
}

// Synthesize 调用生成模型，返回原始候选输出
// 传输层失败包装为 SynthesisError 立即上抛
func (s *Synthesizer) Synthesize(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	raw, err := s.llm.ChatJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", &SynthesisError{Err: err}
	}

	s.logger.Debug("Candidate schedule synthesized", "raw_bytes", len(raw))
	return raw, nil
}
