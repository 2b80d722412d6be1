package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yangwenmai/holidaymeme/internal/session"
)

// ---------------------------------------------------------------------------
// GET /api/state
// ---------------------------------------------------------------------------

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctl.State(r.Context()))
}

// ---------------------------------------------------------------------------
// POST /api/refresh
// ---------------------------------------------------------------------------

// handleRefresh forces a new run. Concurrent requests share one run; a run
// started elsewhere (the worker) yields 409.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// The run outlives a client that disconnects mid-refresh.
	ctx := context.WithoutCancel(r.Context())
	_, err, shared := s.refreshes.Do("refresh", func() (any, error) {
		return s.ctl.Refresh(ctx)
	})
	if shared {
		slog.Debug("refresh request joined an in-flight run")
	}

	switch {
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, "refresh already in progress")
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, s.ctl.State(r.Context()))
	default:
		writeJSON(w, http.StatusOK, s.ctl.State(r.Context()))
	}
}

// ---------------------------------------------------------------------------
// GET /api/share
// ---------------------------------------------------------------------------

type shareResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	title, text, ok := s.ctl.Share(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no holiday content yet")
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Title: title, Text: text})
}

// ---------------------------------------------------------------------------
// GET /healthz
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
