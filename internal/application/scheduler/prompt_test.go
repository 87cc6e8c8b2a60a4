package scheduler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
)

func newTestAssembler(t *testing.T, budget int) *Assembler {
	t.Helper()
	a, err := NewAssembler(&config.PipelineConfig{PromptTokenBudget: budget})
	assert.NoError(t, err)
	return a
}

// TestAssemble_SectionOrder 测试上下文区块的固定顺序
func TestAssemble_SectionOrder(t *testing.T) {
	a := newTestAssembler(t, 100000)

	passages := []Passage{
		{Content: "Nasya for head and neck congestion", Source: "data1.csv", Score: 0.9},
		{Content: "Swedana preparation guidance", Source: "data2.csv", Score: 0.8},
	}
	prompt := a.Assemble("mild seasonal congestion", passages, nil)

	general := strings.Index(prompt, "general_information_about_panchakarma")
	specific := strings.Index(prompt, "specific_information_with_respect_to_symptoms")
	query := strings.Index(prompt, "patient_symptoms: mild seasonal congestion")

	assert.Greater(t, general, -1)
	assert.Greater(t, specific, general)
	assert.Greater(t, query, specific)

	// 每条语料单独标记
	assert.Equal(t, 2, strings.Count(prompt, "Specific Content:"))
	assert.NotContains(t, prompt, "correction_required")
}

// TestAssemble_Deterministic 测试相同输入产出相同提示词
func TestAssemble_Deterministic(t *testing.T) {
	a := newTestAssembler(t, 100000)
	passages := []Passage{{Content: "Basti for Vata disorders"}}

	p1 := a.Assemble("chronic constipation", passages, nil)
	p2 := a.Assemble("chronic constipation", passages, nil)
	assert.Equal(t, p1, p2)
}

// TestAssemble_ViolationFeedback 测试违规反馈块
func TestAssemble_ViolationFeedback(t *testing.T) {
	a := newTestAssembler(t, 100000)
	passages := []Passage{{Content: "Nasya guidance"}}

	violations := []string{
		"day 2 references a hands-on procedure but therapist_name is null",
	}
	prompt := a.Assemble("congestion", passages, violations)

	assert.Contains(t, prompt, "<correction_required>")
	assert.Contains(t, prompt, violations[0])
}

// TestAssemble_TokenBudgetTruncation 测试超预算时裁剪靠后的语料
func TestAssemble_TokenBudgetTruncation(t *testing.T) {
	// 预算远小于固定块，仍保留排名第一的语料
	a := newTestAssembler(t, 10)

	passages := []Passage{
		{Content: "first passage about Nasya"},
		{Content: "second passage about Swedana"},
		{Content: "third passage about Basti"},
	}
	prompt := a.Assemble("congestion", passages, nil)

	assert.Contains(t, prompt, "first passage about Nasya")
	assert.NotContains(t, prompt, "second passage about Swedana")
	assert.NotContains(t, prompt, "third passage about Basti")
}
