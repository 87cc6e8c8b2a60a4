package scheduler

import (
	"fmt"
	"strings"

	"log/slog"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
	"github.com/suminyol/AyurSutra/internal/infrastructure/token"
)

// Assembler 提示词装配器
// 纯函数语义：给定相同输入产出相同提示词，不做网络调用
type Assembler struct {
	estimator   *token.Estimator
	tokenBudget int
	logger      *slog.Logger
}

// NewAssembler 创建提示词装配器
func NewAssembler(cfg *config.PipelineConfig) (*Assembler, error) {
	estimator, err := token.GetEstimator()
	if err != nil {
		return nil, fmt.Errorf("failed to init token estimator: %w", err)
	}

	budget := cfg.PromptTokenBudget
	if budget <= 0 {
		budget = 100000
	}

	return &Assembler{
		estimator:   estimator,
		tokenBudget: budget,
		logger:      log.NewModuleLogger("scheduler", "assembler"),
	}, nil
}

// SystemPrompt 固定指令模板
func (a *Assembler) SystemPrompt() string {
	return schedulerSystemPrompt
}

// Assemble 装配 grounding 上下文
// 固定顺序：通用背景块、检索语料块（逐条标记）、患者描述；
// violations 非空时附加修正指令块（修复环路的再生成路径）
func (a *Assembler) Assemble(query string, passages []Passage, violations []string) string {
	passages = a.fitBudget(query, passages)

	var b strings.Builder
	b.WriteString("<context>\n")
	b.WriteString("    general_information_about_panchakarma:\n")
	b.WriteString(panchakarmaBackground)
	b.WriteString("\n    specific_information_with_respect_to_symptoms:\n")

	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n\n")
		}
		b.WriteString(fmt.Sprintf("Specific Content: %s", p.Content))
	}

	b.WriteString("\n\n    patient_symptoms: ")
	b.WriteString(query)
	b.WriteString("\n</context>\n")

	if len(violations) > 0 {
		b.WriteString("\n<correction_required>\n")
		b.WriteString("    Your previous schedule violated the output contract. Produce a fully corrected schedule fixing every violation below while keeping all other constraints satisfied:\n")
		for _, v := range violations {
			b.WriteString("    - ")
			b.WriteString(v)
			b.WriteString("\n")
		}
		b.WriteString("</correction_required>\n")
	}

	return b.String()
}

// fitBudget 在 token 预算内截断检索语料
// 背景块与指令块固定保留，只裁剪排名靠后的语料
func (a *Assembler) fitBudget(query string, passages []Passage) []Passage {
	fixed := a.estimator.CountTokens(schedulerSystemPrompt) +
		a.estimator.CountTokens(panchakarmaBackground) +
		a.estimator.CountTokens(query)

	used := fixed
	kept := make([]Passage, 0, len(passages))
	for _, p := range passages {
		cost := a.estimator.CountTokens(p.Content)
		if used+cost > a.tokenBudget && len(kept) > 0 {
			break
		}
		used += cost
		kept = append(kept, p)
	}

	if len(kept) < len(passages) {
		a.logger.Warn("Passages truncated to fit token budget",
			"kept", len(kept),
			"dropped", len(passages)-len(kept),
			"budget", a.tokenBudget,
		)
	}
	return kept
}
