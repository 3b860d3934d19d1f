// Package mcpserver exposes the recording and script libraries to assistants as Model Context
// Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/domain"
	"github.com/jwulff/prompter/internal/teleprompter"
)

const (
	serverName    = "prompter"
	serverVersion = "1.0.0"
)

// Gateway is the persistence the tools read and write.
type Gateway interface {
	CurrentSession(ctx context.Context) (*domain.User, error)
	ListRecordings(ctx context.Context) ([]domain.Recording, error)
	RenameRecording(ctx context.Context, id, title string) error
	DeleteRecording(ctx context.Context, id string) error
	ListScripts(ctx context.Context) ([]domain.Script, error)
}

// Server holds the tool handlers.
type Server struct {
	gw  Gateway
	log *zap.Logger
}

func New(gw Gateway, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{gw: gw, log: log}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool("list_recordings",
		mcp.WithDescription("List saved recordings, newest first."),
		mcp.WithString("type", mcp.Description("Only recordings of this type: video or audio")),
	), s.listRecordings)

	srv.AddTool(mcp.NewTool("rename_recording",
		mcp.WithDescription("Change the title of a saved recording."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recording id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
	), s.renameRecording)

	srv.AddTool(mcp.NewTool("delete_recording",
		mcp.WithDescription("Delete a saved recording. Deleting an unknown id succeeds."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recording id")),
	), s.deleteRecording)

	srv.AddTool(mcp.NewTool("list_scripts",
		mcp.WithDescription("List saved scripts, newest first."),
	), s.listScripts)

	srv.AddTool(mcp.NewTool("paginate_script",
		mcp.WithDescription("Split a script into the paragraphs the teleprompter shows."),
		mcp.WithString("script", mcp.Required(), mcp.Description("Script text")),
	), s.paginateScript)

	srv.AddTool(mcp.NewTool("current_user",
		mcp.WithDescription("Show the signed-in user, if any."),
	), s.currentUser)

	return srv
}

// ServeStdio serves the tools on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCPServer())
}

type recordingView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"durationSeconds"`
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	FilePath        string    `json:"filePath"`
}

func (s *Server) listRecordings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var only domain.Mode
	if raw := strings.TrimSpace(req.GetString("type", "")); raw != "" {
		mode, err := domain.ParseMode(strings.ToLower(raw))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		only = mode
	}

	recs, err := s.gw.ListRecordings(ctx)
	if err != nil {
		return s.toolError("list recordings", err), nil
	}
	views := make([]recordingView, 0, len(recs))
	for _, r := range recs {
		if only != "" && r.Mode != only {
			continue
		}
		views = append(views, recordingView{
			ID:              r.ID,
			Title:           r.Title,
			Duration:        teleprompter.FormatDuration(r.DurationSeconds),
			DurationSeconds: r.DurationSeconds,
			Date:            r.CreatedAt,
			Type:            string(r.Mode),
			FilePath:        r.StoragePath,
		})
	}
	return jsonResult(views)
}

func (s *Server) renameRecording(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	if err := s.gw.RenameRecording(ctx, id, title); err != nil {
		return s.toolError("rename recording", err), nil
	}
	s.log.Info("recording renamed", zap.String("recording_id", id))
	return mcp.NewToolResultText("renamed " + id), nil
}

func (s *Server) deleteRecording(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gw.DeleteRecording(ctx, id); err != nil {
		return s.toolError("delete recording", err), nil
	}
	s.log.Info("recording deleted", zap.String("recording_id", id))
	return mcp.NewToolResultText("deleted " + id), nil
}

func (s *Server) listScripts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scripts, err := s.gw.ListScripts(ctx)
	if err != nil {
		return s.toolError("list scripts", err), nil
	}
	if scripts == nil {
		scripts = []domain.Script{}
	}
	return jsonResult(scripts)
}

func (s *Server) paginateScript(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	script, err := req.RequireString("script")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paragraphs := teleprompter.Paginate(script)
	if paragraphs == nil {
		paragraphs = []string{}
	}
	return jsonResult(paragraphs)
}

func (s *Server) currentUser(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, err := s.gw.CurrentSession(ctx)
	if err != nil {
		return s.toolError("current user", err), nil
	}
	if u == nil {
		return mcp.NewToolResultText("not signed in"), nil
	}
	return jsonResult(u)
}

// toolError reports a gateway failure to the client. Unknown ids keep their message; anything
// else is logged and reported generically.
func (s *Server) toolError(op string, err error) *mcp.CallToolResult {
	if errors.Is(err, db.ErrNotFound) {
		return mcp.NewToolResultError(db.ErrNotFound.Error())
	}
	s.log.Error(op, zap.Error(err))
	return mcp.NewToolResultError("Operation failed")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
