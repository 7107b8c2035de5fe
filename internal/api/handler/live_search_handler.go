package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projecthub/portal-api/internal/api/metrics"
	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
	"github.com/projecthub/portal-api/internal/core/service"
)

const (
	liveUpdateBuffer = 16
	liveIdleTTL      = 5 * time.Minute
	reapInterval     = time.Minute
)

// LiveSearchHandler hosts interactive search sessions: one SearchSession per
// open search surface, fed by keystroke requests and drained by an SSE
// stream. Closing the surface (or going idle) tears the session down, which
// cancels any pending debounce timer and in-flight dispatch.
type LiveSearchHandler struct {
	searcher ports.SearchService
	debounce time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*liveSession
}

type liveSession struct {
	session  *service.SearchSession
	updates  chan service.SearchUpdate
	lastSeen time.Time
}

func NewLiveSearchHandler(searcher ports.SearchService, debounce time.Duration, logger zerolog.Logger) *LiveSearchHandler {
	return &LiveSearchHandler{
		searcher: searcher,
		debounce: debounce,
		logger:   logger,
		sessions: make(map[string]*liveSession),
	}
}

// StartReaper launches the idle-session reaper. It stops when ctx is
// cancelled.
func (h *LiveSearchHandler) StartReaper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.reap()
			}
		}
	}()
}

func (h *LiveSearchHandler) reap() {
	cutoff := time.Now().Add(-liveIdleTTL)
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ls := range h.sessions {
		if ls.lastSeen.Before(cutoff) {
			h.teardownLocked(id, ls)
			h.logger.Debug().Str("session_id", id).Msg("idle live search session reaped")
		}
	}
}

// teardownLocked closes a session and its update channel. Safe because
// SearchSession.Close guarantees no delivery runs after it returns.
func (h *LiveSearchHandler) teardownLocked(id string, ls *liveSession) {
	ls.session.Close()
	close(ls.updates)
	delete(h.sessions, id)
	metrics.LiveSearchSessions.Dec()
}

type createLiveResponse struct {
	SessionID string `json:"session_id"`
}

type keystrokeRequest struct {
	Query string `json:"query"`
}

// liveSearchEvent is the SSE payload for one settled or failed dispatch.
type liveSearchEvent struct {
	Seq   uint64             `json:"seq"`
	Query string             `json:"query"`
	State string             `json:"state"`
	Hits  []domain.SearchHit `json:"hits,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Create handles POST /v1/search/live — opens a new search surface.
//
// @Summary      Open a live search session
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  createLiveResponse
// @Router       /v1/search/live [post]
func (h *LiveSearchHandler) Create(c echo.Context) error {
	id := newLiveID()
	ls := &liveSession{
		updates:  make(chan service.SearchUpdate, liveUpdateBuffer),
		lastSeen: time.Now(),
	}
	ls.session = service.NewSearchSession(h.searcher, h.debounce, func(u service.SearchUpdate) {
		select {
		case ls.updates <- u:
		default:
			// No consumer keeping up; the UI only needs the latest state.
		}
	}, h.logger)

	h.mu.Lock()
	h.sessions[id] = ls
	h.mu.Unlock()
	metrics.LiveSearchSessions.Inc()

	return c.JSON(http.StatusCreated, createLiveResponse{SessionID: id})
}

// Keystroke handles PUT /v1/search/live/:id — feeds one query change.
//
// @Summary      Send a keystroke to a live search session
// @Tags         search
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Session id"
// @Param        body  body  keystrokeRequest  true  "Current query"
// @Success      202
// @Failure      404  {object}  map[string]string
// @Router       /v1/search/live/{id} [put]
func (h *LiveSearchHandler) Keystroke(c echo.Context) error {
	var req keystrokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ls, err := h.lookup(c.Param("id"))
	if err != nil {
		return err
	}

	ls.session.OnQueryChange(req.Query)
	return c.NoContent(http.StatusAccepted)
}

// Events handles GET /v1/search/live/:id/events — streams updates as SSE
// until the client disconnects or the session closes.
//
// @Summary      Stream live search results
// @Tags         search
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Session id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /v1/search/live/{id}/events [get]
func (h *LiveSearchHandler) Events(c echo.Context) error {
	ls, err := h.lookup(c.Param("id"))
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-ls.updates:
			if !ok {
				return nil
			}
			h.touch(c.Param("id"))
			if err := writeEvent(res, u); err != nil {
				return nil
			}
		}
	}
}

// Close handles DELETE /v1/search/live/:id — the unmount path: stops the
// pending timer and prevents any in-flight continuation from applying
// results.
//
// @Summary      Close a live search session
// @Tags         search
// @Security     BearerAuth
// @Param        id  path  string  true  "Session id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/search/live/{id} [delete]
func (h *LiveSearchHandler) Close(c echo.Context) error {
	id := c.Param("id")

	h.mu.Lock()
	ls, ok := h.sessions[id]
	if ok {
		h.teardownLocked(id, ls)
	}
	h.mu.Unlock()

	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown search session")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LiveSearchHandler) lookup(id string) (*liveSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ls, ok := h.sessions[id]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown search session")
	}
	ls.lastSeen = time.Now()
	return ls, nil
}

func (h *LiveSearchHandler) touch(id string) {
	h.mu.Lock()
	if ls, ok := h.sessions[id]; ok {
		ls.lastSeen = time.Now()
	}
	h.mu.Unlock()
}

func writeEvent(res *echo.Response, u service.SearchUpdate) error {
	ev := liveSearchEvent{
		Seq:   u.Seq,
		Query: u.Query,
		State: string(u.State),
		Hits:  u.Hits,
	}
	if u.Err != nil {
		// Generic, retry-eligible message; the cause stays in the logs.
		ev.Error = "search unavailable"
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}

func newLiveID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
