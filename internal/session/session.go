// Package session is the presentation-facing controller around the pipeline.
// It tracks loading flags, rejects re-entrant runs and turns outcomes into
// user-facing notices.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// User-facing messages.
const (
	MsgLoadFailed = "Failed to load holiday content"
	MsgRefreshed  = "Content refreshed!"
)

// ErrBusy is returned when a run is already in flight.
var ErrBusy = errors.New("a holiday run is already in progress")

// Resolver is the pipeline as seen by the session.
type Resolver interface {
	Current(ctx context.Context) *model.DailyContent
	Resolve(ctx context.Context, force bool) (*model.DailyContent, error)
}

// Level classifies a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a one-line message for the user.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives every notice as it is raised.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// State is a snapshot for rendering.
type State struct {
	Content      *model.DailyContent `json:"content"`
	IsLoading    bool                `json:"is_loading"`
	IsRefreshing bool                `json:"is_refreshing"`
	Notice       *Notice             `json:"notice,omitempty"`
}

// Session serializes pipeline runs for one presentation surface.
type Session struct {
	pipeline Resolver
	notifier Notifier
	now      func() time.Time

	mu         sync.Mutex
	loading    bool
	refreshing bool
	notice     *Notice
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier forwards notices to n.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithNow sets the timestamp source for notices.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session over the pipeline.
func New(p Resolver, opts ...Option) *Session {
	s := &Session{pipeline: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Session) State(ctx context.Context) State {
	content := s.pipeline.Current(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Content:      content,
		IsLoading:    s.loading,
		IsRefreshing: s.refreshing,
		Notice:       s.notice,
	}
}

// Busy reports whether a run is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Load resolves today's card, reusing the cached one when it is for today.
func (s *Session) Load(ctx context.Context) (*model.DailyContent, error) {
	return s.run(ctx, false)
}

// Refresh forces a new run and reports the outcome as a notice.
func (s *Session) Refresh(ctx context.Context) (*model.DailyContent, error) {
	return s.run(ctx, true)
}

// Share returns the share title and text for the current card. ok is false
// when nothing has been resolved yet.
func (s *Session) Share(ctx context.Context) (title, text string, ok bool) {
	c := s.pipeline.Current(ctx)
	if c == nil {
		return "", "", false
	}
	return model.ShareTitle(*c), model.ShareableText(*c), true
}

func (s *Session) run(ctx context.Context, force bool) (*model.DailyContent, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.loading = true
	s.refreshing = force
	s.mu.Unlock()

	content, err := s.pipeline.Resolve(ctx, force)

	s.mu.Lock()
	s.loading = false
	s.refreshing = false
	s.mu.Unlock()

	switch {
	case err != nil:
		s.raise(LevelError, MsgLoadFailed)
	case force:
		s.raise(LevelSuccess, MsgRefreshed)
	}
	return content, err
}

func (s *Session) raise(level Level, msg string) {
	n := Notice{Level: level, Message: msg, At: s.now()}
	s.mu.Lock()
	s.notice = &n
	s.mu.Unlock()

	slog.Info("notice", "level", string(level), "message", msg)
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}
