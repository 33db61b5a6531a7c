// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helixml/blockgen/application/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Translator turns program documents into sketches and lists the usable blocks.
type Translator interface {
	TranslateDocument(ctx context.Context, data []byte) (service.Sketch, error)
	Blocks() []service.BlockInfo
}

// Server wraps the MCP server with block programming tools.
type Server struct {
	mcpServer  *server.MCPServer
	translator Translator
	version    string
	logger     *slog.Logger
}

// NewServer creates a new MCP server backed by translator.
func NewServer(translator Translator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		translator: translator,
		version:    version,
		logger:     logger,
	}

	mcpServer := server.NewMCPServer(
		"blockgen",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	listBlocksTool := mcp.NewTool("list_blocks",
		mcp.WithDescription("List the blocks a program may use, with their genus, value type and C++ template"),
		mcp.WithString("genus",
			mcp.Description("Only list blocks of this genus: value or command"),
		),
	)
	mcpServer.AddTool(listBlocksTool, s.handleListBlocks)

	translateTool := mcp.NewTool("translate_program",
		mcp.WithDescription("Translate a block program (YAML or JSON) into Arduino sketch source"),
		mcp.WithString("program",
			mcp.Required(),
			mcp.Description("The program document: name, setup, loop and routines"),
		),
	)
	mcpServer.AddTool(translateTool, s.handleTranslate)

	versionTool := mcp.NewTool("get_version",
		mcp.WithDescription("Get the blockgen server version"),
	)
	mcpServer.AddTool(versionTool, s.handleGetVersion)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	template := mcp.NewResourceTemplate(
		blockURIScheme+"{name}",
		"block",
		mcp.WithTemplateDescription("A block from the catalogue, as JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	mcpServer.AddResourceTemplate(template, s.handleReadBlock)
}

type blockResult struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Genus      string   `json:"genus"`
	ValueType  string   `json:"value_type,omitempty"`
	Template   string   `json:"template,omitempty"`
	Sockets    []string `json:"sockets,omitempty"`
	Structural bool     `json:"structural"`
	URI        string   `json:"uri"`
}

func toBlockResult(b service.BlockInfo) blockResult {
	return blockResult{
		Name:       b.Name(),
		Label:      b.Label(),
		Genus:      string(b.Genus()),
		ValueType:  string(b.ValueType()),
		Template:   b.Template(),
		Sockets:    b.Sockets(),
		Structural: b.Structural(),
		URI:        NewBlockURI(b.Name()).String(),
	}
}

func (s *Server) handleListBlocks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	genus := strings.ToLower(strings.TrimSpace(request.GetString("genus", "")))
	if genus != "" && genus != "value" && genus != "command" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown genus %q: want value or command", genus)), nil
	}

	results := []blockResult{}
	for _, b := range s.translator.Blocks() {
		if genus != "" && string(b.Genus()) != genus {
			continue
		}
		results = append(results, toBlockResult(b))
	}

	jsonBytes, err := json.Marshal(results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal blocks: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("program")
	if err != nil {
		return mcp.NewToolResultError("program is required"), nil
	}

	sketch, err := s.translator.TranslateDocument(ctx, []byte(doc))
	if err != nil {
		s.logger.Warn("translate_program failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("translation failed: %v", err)), nil
	}

	s.logger.Info("translate_program",
		slog.String("program", sketch.Name()),
		slog.Int("blocks", sketch.BlockCount()),
	)
	return mcp.NewToolResultText(sketch.Source()), nil
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

func (s *Server) handleReadBlock(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri, err := ParseBlockURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	for _, b := range s.translator.Blocks() {
		if b.Name() != uri.Name() {
			continue
		}
		jsonBytes, err := json.Marshal(toBlockResult(b))
		if err != nil {
			return nil, fmt.Errorf("marshal block: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri.String(),
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	}
	return nil, fmt.Errorf("block not found: %s", uri.Name())
}
