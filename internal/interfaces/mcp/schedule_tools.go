package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerateScheduleInput 排程生成工具输入
type GenerateScheduleInput struct {
	Symptoms string `json:"symptoms" jsonschema:"Patient symptom description in natural language (required)"`
}

// ScheduleDay 排程中的单日条目
type ScheduleDay struct {
	Day                int      `json:"day" jsonschema:"1-based day number"`
	DoctorConsultation string   `json:"doctor_consultation" jsonschema:"Whether a doctor consultation happens this day: yes or no"`
	Plan               []string `json:"plan" jsonschema:"Ordered list of activities for the day"`
	TherapistName      *string  `json:"therapist_name" jsonschema:"Assigned therapist for hands-on procedures, null otherwise"`
}

// GenerateScheduleOutput 排程生成工具输出
type GenerateScheduleOutput struct {
	Schedule []ScheduleDay `json:"schedule" jsonschema:"Ordered day-by-day treatment schedule"`
	Days     int           `json:"days" jsonschema:"Total number of days in the schedule"`
}

// generateScheduleTool 排程生成工具实现
func (s *MCPServer) generateScheduleTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GenerateScheduleInput,
) (*mcp.CallToolResult, GenerateScheduleOutput, error) {
	output := GenerateScheduleOutput{
		Schedule: []ScheduleDay{},
	}

	if input.Symptoms == "" {
		return nil, output, fmt.Errorf("symptoms is required")
	}

	sched, err := s.schedulerService.GenerateSchedule(ctx, input.Symptoms)
	if err != nil {
		return nil, output, fmt.Errorf("schedule generation failed: %w", err)
	}

	output.Schedule = make([]ScheduleDay, 0, len(sched.Days))
	for _, d := range sched.Days {
		output.Schedule = append(output.Schedule, ScheduleDay{
			Day:                d.Day,
			DoctorConsultation: d.DoctorConsultation,
			Plan:               d.Plan,
			TherapistName:      d.TherapistName,
		})
	}
	output.Days = len(output.Schedule)

	// 返回 nil，SDK 会自动序列化 output
	return nil, output, nil
}

// SearchCorpusInput 语料检索工具输入
type SearchCorpusInput struct {
	Query string `json:"query" jsonschema:"Natural language search query (required)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of passages to return, defaults to 5, max 10"`
}

// CorpusPassage 检索到的语料片段
type CorpusPassage struct {
	Content string  `json:"content" jsonschema:"Passage text"`
	Source  string  `json:"source" jsonschema:"Source file the passage came from"`
	Score   float32 `json:"score" jsonschema:"Similarity score, higher is more relevant"`
}

// SearchCorpusOutput 语料检索工具输出
type SearchCorpusOutput struct {
	Passages   []CorpusPassage `json:"passages" jsonschema:"Matching passages ordered by similarity"`
	TotalCount int             `json:"total_count" jsonschema:"Number of passages returned"`
}

// searchCorpusTool 语料检索工具实现
func (s *MCPServer) searchCorpusTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchCorpusInput,
) (*mcp.CallToolResult, SearchCorpusOutput, error) {
	output := SearchCorpusOutput{
		Passages: []CorpusPassage{},
	}

	if input.Query == "" {
		return nil, output, fmt.Errorf("query is required")
	}

	// 设置默认值（最多 10 条，避免上下文过载）
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > 10 {
		limit = 10
	}

	passages, err := s.retriever.RetrieveN(ctx, input.Query, limit)
	if err != nil {
		return nil, output, fmt.Errorf("corpus search failed: %w", err)
	}

	output.Passages = make([]CorpusPassage, 0, len(passages))
	for _, p := range passages {
		output.Passages = append(output.Passages, CorpusPassage{
			Content: p.Content,
			Source:  p.Source,
			Score:   p.Score,
		})
	}
	output.TotalCount = len(output.Passages)

	return nil, output, nil
}

// GetCorpusStatsInput 语料统计工具输入（无参数）
type GetCorpusStatsInput struct{}

// GetCorpusStatsOutput 语料统计工具输出
type GetCorpusStatsOutput struct {
	TotalDocuments int      `json:"total_documents" jsonschema:"Number of indexed reference documents"`
	Sources        []string `json:"sources" jsonschema:"Distinct source files in the index"`
	LastIndexedAt  int64    `json:"last_indexed_at" jsonschema:"Unix timestamp of the most recent indexing run, 0 if never indexed"`
}

// getCorpusStatsTool 语料统计工具实现
func (s *MCPServer) getCorpusStatsTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCorpusStatsInput,
) (*mcp.CallToolResult, GetCorpusStatsOutput, error) {
	output := GetCorpusStatsOutput{
		Sources: []string{},
	}

	stats, err := s.indexingService.Stats(ctx)
	if err != nil {
		return nil, output, fmt.Errorf("failed to read corpus stats: %w", err)
	}

	output.TotalDocuments = stats.TotalDocuments
	if stats.Sources != nil {
		output.Sources = stats.Sources
	}
	output.LastIndexedAt = stats.LastIndexedAt

	return nil, output, nil
}
