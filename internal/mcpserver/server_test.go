package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/domain"
)

func newTestServer(t *testing.T) (*Server, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "mcp.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, zap.NewNop()), store
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func seed(t *testing.T, store *db.Store) {
	t.Helper()
	ctx := context.Background()
	when := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertRecording(ctx, domain.Recording{
		ID: "a", Title: "Pitch", DurationSeconds: 75, CreatedAt: when, Mode: domain.ModeAudio, StoragePath: "/m/a.m4a",
	}))
	require.NoError(t, store.UpsertRecording(ctx, domain.Recording{
		ID: "b", Title: "Intro", DurationSeconds: 9, CreatedAt: when, Mode: domain.ModeVideo, StoragePath: "/m/b.mp4",
	}))
}

func TestListRecordings(t *testing.T) {
	s, store := newTestServer(t)
	seed(t, store)

	res, err := s.listRecordings(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var views []recordingView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "b", views[0].ID)
	assert.Equal(t, "1:15", views[1].Duration)
	assert.Equal(t, "audio", views[1].Type)
}

func TestListRecordingsByType(t *testing.T) {
	s, store := newTestServer(t)
	seed(t, store)

	res, err := s.listRecordings(context.Background(), call(map[string]any{"type": "Audio"}))
	require.NoError(t, err)
	var views []recordingView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "a", views[0].ID)

	res, err = s.listRecordings(context.Background(), call(map[string]any{"type": "podcast"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "podcast")
}

func TestListRecordingsEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	res, err := s.listRecordings(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", text(t, res))
}

func TestRenameRecording(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)
	seed(t, store)

	res, err := s.renameRecording(ctx, call(map[string]any{"id": "a", "title": "  Final pitch "}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	recs, err := store.ListRecordings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Final pitch", recs[1].Title)
}

func TestRenameRecordingErrors(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)
	seed(t, store)

	res, err := s.renameRecording(ctx, call(map[string]any{"id": "zzz", "title": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "recording not found", text(t, res))

	res, err = s.renameRecording(ctx, call(map[string]any{"id": "a"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.renameRecording(ctx, call(map[string]any{"id": "a", "title": "   "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDeleteRecording(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)
	seed(t, store)

	res, err := s.deleteRecording(ctx, call(map[string]any{"id": "a"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = s.deleteRecording(ctx, call(map[string]any{"id": "a"}))
	require.NoError(t, err)
	assert.False(t, res.IsError, "deleting an absent id is not an error")

	recs, err := store.ListRecordings(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "b", recs[0].ID)
}

func TestPaginateScript(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.paginateScript(context.Background(), call(map[string]any{"script": "Hello\r\n\r\n  World  \n"}))
	require.NoError(t, err)
	var paragraphs []string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &paragraphs))
	assert.Equal(t, []string{"Hello", "World"}, paragraphs)

	res, err = s.paginateScript(context.Background(), call(map[string]any{"script": " "}))
	require.NoError(t, err)
	assert.Equal(t, "[]", text(t, res))
}

func TestListScripts(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)
	require.NoError(t, store.SaveScript(ctx, domain.Script{ID: "s1", Title: "Intro", Content: "Hi"}))

	res, err := s.listScripts(ctx, call(nil))
	require.NoError(t, err)
	var scripts []domain.Script
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &scripts))
	require.Len(t, scripts, 1)
	assert.Equal(t, "Intro", scripts[0].Title)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)

	res, err := s.currentUser(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, "not signed in", text(t, res))

	require.NoError(t, store.SetCurrentSession(ctx, domain.User{ID: "1", Name: "Test User", Email: "test@test.com"}))
	res, err = s.currentUser(ctx, call(nil))
	require.NoError(t, err)
	var u domain.User
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &u))
	assert.Equal(t, "Test User", u.Name)
}

func TestMCPServerRegistersTools(t *testing.T) {
	s, _ := newTestServer(t)
	resp := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{
		"list_recordings", "rename_recording", "delete_recording",
		"list_scripts", "paginate_script", "current_user",
	} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
