package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
	"github.com/wagiedev/stockfish-bridge-go/internal/position"
)

const (
	// ServerName is the implementation name reported during initialize.
	ServerName = "stockfish-bridge"

	// ToolBestMove is the name of the move-suggestion tool.
	ToolBestMove = "best_move"
)

// Mover answers a position with a move. *stockfishbridge.Bridge satisfies it.
type Mover interface {
	BestMove(ctx context.Context, position string) (string, error)
}

// Server wraps the official MCP SDK server with the bridge tools registered.
type Server struct {
	log    *slog.Logger
	mover  Mover
	server *mcp.Server
}

// NewServer creates an MCP server backed by mover.
func NewServer(log *slog.Logger, mover Mover, version string) *Server {
	s := &Server{
		log:   log.With("component", "mcp"),
		mover: mover,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
	}

	s.server.AddTool(
		NewTool(
			ToolBestMove,
			"Ask the UCI engine for the best move in a FEN position. "+
				"Returns a move in long algebraic notation (e.g. e2e4).",
			SimpleSchema(map[string]string{
				"fen": "Position in Forsyth-Edwards Notation, e.g. " + position.StartFEN,
			}),
		),
		s.handleBestMove,
	)

	return s
}

// Serve runs the server over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("Serving MCP over stdio")

	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

func (s *Server) handleBestMove(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	fen, _ := args["fen"].(string)
	if fen == "" {
		return ErrorResult("missing required argument: fen"), nil
	}

	if err := position.Check(fen); err != nil {
		s.log.Warn("Rejected position", "error", err)

		return ErrorResult("invalid fen: " + err.Error()), nil
	}

	move, err := s.mover.BestMove(ctx, fen)
	if err != nil {
		code := errors.CodeOf(err)
		s.log.Warn("Engine call failed", "code", code, "error", err)

		return ErrorResult(code.String()), nil
	}

	s.log.Debug("Engine answered", "fen", fen, "move", move)

	return TextResult(move), nil
}

// SimpleSchema creates an object schema whose properties are all required
// strings. props maps each property name to its description.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, description := range props {
		properties[name] = &jsonschema.Schema{Type: "string", Description: description}
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
