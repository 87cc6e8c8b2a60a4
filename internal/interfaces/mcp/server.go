package mcp

import (
	"net/http"

	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/suminyol/AyurSutra/internal/application/indexing"
	"github.com/suminyol/AyurSutra/internal/application/scheduler"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// MCPServer MCP 服务器
type MCPServer struct {
	server           *mcp.Server
	handler          http.Handler
	schedulerService *scheduler.Service
	retriever        *scheduler.Retriever
	indexingService  *indexing.Service
	logger           *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(
	schedulerService *scheduler.Service,
	retriever *scheduler.Retriever,
	indexingService *indexing.Service,
) *MCPServer {
	// 创建 MCP 服务器实例
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ayursutra-genai",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	// 创建服务器实例（用于闭包捕获依赖）
	mcpServer := &MCPServer{
		server:           server,
		schedulerService: schedulerService,
		retriever:        retriever,
		indexingService:  indexingService,
		logger:           log.NewModuleLogger("mcp", "server"),
	}

	// 注册工具：generate_schedule
	mcp.AddTool(server, &mcp.Tool{
		Name: "generate_schedule",
		Description: `Generate a day-by-day Panchakarma treatment schedule from a free-text symptom description.
Parameters:
- symptoms (string, required): Patient symptom description in natural language, e.g., "chronic lower back pain, poor sleep, high stress"

Returns: An ordered list of days. Each day has a day number, a doctor_consultation flag ("yes"/"no"), a plan (list of activities), and an optional therapist_name for hands-on procedures.`,
	}, mcpServer.generateScheduleTool)

	// 注册工具：search_corpus
	mcp.AddTool(server, &mcp.Tool{
		Name: "search_corpus",
		Description: `Search the Panchakarma reference corpus for passages relevant to a query.
Parameters:
- query (string, required): Natural language query, e.g., "Nasya for sinus congestion"
- limit (int, optional): Maximum number of passages to return (1-10, default: 5)

Returns: List of matching passages with source file and similarity score.`,
	}, mcpServer.searchCorpusTool)

	// 注册工具：get_corpus_stats
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_corpus_stats",
		Description: "Get statistics about the indexed Panchakarma reference corpus. No parameters required. Returns: total document count, source file list, and last index timestamp.",
	}, mcpServer.getCorpusStatsTool)

	// 创建 SSE Handler
	handler := mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)

	mcpServer.handler = handler
	return mcpServer
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Start 启动服务器（HTTP/SSE 模式）
// 注意：MCP 服务器通过 HTTP Handler 提供服务，不需要单独启动
func (s *MCPServer) Start() error {
	s.logger.Info("MCP server ready (HTTP/SSE mode)")
	return nil
}

// Stop 停止服务器
func (s *MCPServer) Stop() error {
	// HTTP/SSE 模式下，由 HTTP 服务器统一管理生命周期
	return nil
}
