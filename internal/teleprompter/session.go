// Package teleprompter implements the recording session state machine, its two tickers, and the
// script paginator. It performs no I/O of its own; the only outbound call is Commit handing the
// finished artifact to an ArtifactSink.
package teleprompter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jwulff/prompter/internal/domain"
)

// Scroll speed and font size bounds, with the step the controls move by.
const (
	MinScrollSpeed     = 0.5
	MaxScrollSpeed     = 5.0
	DefaultScrollSpeed = 2.0
	ScrollSpeedStep    = 0.5

	MinFontSize     = 16
	MaxFontSize     = 40
	DefaultFontSize = 24
	FontSizeStep    = 2
)

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrClosed            = errors.New("session torn down")
)

// Status is the recording lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
	StatusStopped   Status = "stopped"
	StatusCommitted Status = "committed"
)

// ArtifactSink receives the artifact produced by Commit.
type ArtifactSink interface {
	UpsertRecording(ctx context.Context, rec domain.Recording) error
}

// CommitOptions carries the values Commit cannot derive from the session.
type CommitOptions struct {
	Title    string    // empty → "Recording <date>"
	MediaDir string    // directory the storage path is placed in
	Now      time.Time // zero → time.Now()
}

// Session is one visit to the recording screen. The zero value is not usable; use NewSession.
//
// Both tickers are stamped with the epoch current when they were armed. Stop and Teardown bump the
// epoch, so a tick still in flight is rejected by Advance and never re-armed.
type Session struct {
	mode     domain.Mode
	status   Status
	elapsed  int
	scroll   float64
	speed    float64
	fontSize int
	epoch    uint64
	closed   bool
}

// NewSession returns an idle session. speed and fontSize are clamped.
func NewSession(mode domain.Mode, speed float64, fontSize int) Session {
	s := Session{mode: mode, status: StatusIdle}
	s.SetScrollSpeed(speed)
	s.SetFontSize(fontSize)
	return s
}

func (s *Session) Mode() domain.Mode       { return s.mode }
func (s *Session) Status() Status          { return s.status }
func (s *Session) ElapsedSeconds() int     { return s.elapsed }
func (s *Session) ScrollPosition() float64 { return s.scroll }
func (s *Session) ScrollSpeed() float64    { return s.speed }
func (s *Session) FontSize() int           { return s.fontSize }
func (s *Session) Epoch() uint64           { return s.epoch }
func (s *Session) Closed() bool            { return s.closed }

// Start begins recording and returns the ticks to schedule. Calling it while already recording
// is a no-op and returns no ticks.
func (s *Session) Start() ([]Tick, error) {
	if s.closed {
		return nil, ErrClosed
	}
	switch s.status {
	case StatusRecording:
		return nil, nil
	case StatusIdle:
	default:
		return nil, fmt.Errorf("start from %s: %w", s.status, ErrInvalidTransition)
	}

	s.status = StatusRecording
	s.elapsed = 0
	s.scroll = 0
	s.epoch++
	return []Tick{
		{Kind: ScrollTick, Epoch: s.epoch},
		{Kind: ElapsedTick, Epoch: s.epoch},
	}, nil
}

// Stop halts both tickers. The elapsed seconds at this point become the artifact duration.
func (s *Session) Stop() error {
	if s.closed {
		return ErrClosed
	}
	if s.status != StatusRecording {
		return fmt.Errorf("stop from %s: %w", s.status, ErrInvalidTransition)
	}
	s.status = StatusStopped
	s.epoch++
	return nil
}

// Discard drops a stopped take and returns to idle.
func (s *Session) Discard() error {
	if s.closed {
		return ErrClosed
	}
	if s.status != StatusStopped {
		return fmt.Errorf("discard from %s: %w", s.status, ErrInvalidTransition)
	}
	s.status = StatusIdle
	s.elapsed = 0
	s.scroll = 0
	return nil
}

// Artifact builds the recording for a stopped take without handing it anywhere.
func (s *Session) Artifact(opts CommitOptions) (domain.Recording, error) {
	if s.closed {
		return domain.Recording{}, ErrClosed
	}
	if s.status != StatusStopped {
		return domain.Recording{}, fmt.Errorf("commit from %s: %w", s.status, ErrInvalidTransition)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Recording{}, fmt.Errorf("generate recording id: %w", err)
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle(now)
	}

	return domain.Recording{
		ID:              id.String(),
		Title:           title,
		DurationSeconds: s.elapsed,
		CreatedAt:       now,
		Mode:            s.mode,
		StoragePath:     filepath.Join(opts.MediaDir, id.String()+s.mode.Extension()),
	}, nil
}

// Commit hands the stopped take to sink. On failure the session stays stopped.
func (s *Session) Commit(ctx context.Context, sink ArtifactSink, opts CommitOptions) (domain.Recording, error) {
	rec, err := s.Artifact(opts)
	if err != nil {
		return domain.Recording{}, err
	}
	if err := sink.UpsertRecording(ctx, rec); err != nil {
		return domain.Recording{}, fmt.Errorf("save recording: %w", err)
	}
	s.status = StatusCommitted
	return rec, nil
}

// SetScrollSpeed stores v clamped to [MinScrollSpeed, MaxScrollSpeed].
func (s *Session) SetScrollSpeed(v float64) {
	if math.IsNaN(v) {
		v = MinScrollSpeed
	}
	s.speed = math.Min(MaxScrollSpeed, math.Max(MinScrollSpeed, v))
}

// SetFontSize stores v clamped to [MinFontSize, MaxFontSize].
func (s *Session) SetFontSize(v int) {
	s.fontSize = min(MaxFontSize, max(MinFontSize, v))
}

// Advance applies a tick and reports whether its ticker should be armed again.
func (s *Session) Advance(t Tick) bool {
	if s.closed || s.status != StatusRecording || t.Epoch != s.epoch {
		return false
	}
	switch t.Kind {
	case ScrollTick:
		s.scroll += s.speed
	case ElapsedTick:
		s.elapsed++
	default:
		return false
	}
	return true
}

// Teardown cancels both tickers and ends the session. Safe to call more than once.
func (s *Session) Teardown() {
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
}

// DefaultTitle is the title given to a recording saved without one.
func DefaultTitle(t time.Time) string {
	return "Recording " + t.Format("Jan 2, 2006")
}
