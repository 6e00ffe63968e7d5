package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/resolver"
	"github.com/macrowatch/macrowatch/internal/store"
)

// OverrideStore is the slice of the override repository the handlers
// need. Nil means overrides are not configured.
type OverrideStore interface {
	Get(ctx context.Context, key string) (store.Override, error)
	Set(ctx context.Context, key string, value float64, note string) (store.Override, error)
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) ([]store.Override, error)
}

// Handlers carries the shared dependencies of every endpoint.
type Handlers struct {
	res       *resolver.Resolver
	overrides OverrideStore
	started   time.Time
}

// NewHandlers builds the endpoint set.
func NewHandlers(res *resolver.Resolver, overrides OverrideStore) *Handlers {
	return &Handlers{res: res, overrides: overrides, started: time.Now()}
}

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	h.writeJSON(w, status, errorBody{
		Error:     code,
		Message:   msg,
		RequestID: requestID(r.Context()),
	})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"overrides": h.overrides != nil,
	})
}

// NotFound answers unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "not_found", "no such route: "+r.URL.Path)
}

type entityResponse struct {
	Key        string                 `json:"key"`
	Name       string                 `json:"name"`
	Group      string                 `json:"group"`
	Level      resolver.ResolvedValue `json:"level"`
	Overridden bool                   `json:"overridden,omitempty"`
	Note       string                 `json:"note,omitempty"`
}

// Entity handles GET /api/entity/{key}: the live level with any
// manual override applied on top.
func (h *Handlers) Entity(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	ent, err := h.res.Registry().Resolve(key)
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, "unknown_entity", err.Error())
		return
	}

	resp := entityResponse{Key: ent.Key, Name: ent.Name, Group: ent.Group}

	if h.overrides != nil {
		if ov, err := h.overrides.Get(r.Context(), ent.Key); err == nil {
			resp.Level = resolver.ResolvedValue{Value: ov.Value, Unit: ent.Unit}
			resp.Overridden = true
			resp.Note = ov.Note
			h.writeJSON(w, http.StatusOK, resp)
			return
		} else if !errors.Is(err, store.ErrNoOverride) {
			log.Warn().Err(err).Str("key", ent.Key).Msg("override lookup failed")
		}
	}

	rv, err := h.res.EntryLevel(r.Context(), ent)
	if err != nil {
		if errors.Is(err, resolver.ErrNoValue) {
			h.writeError(w, r, http.StatusNotFound, "no_value", err.Error())
			return
		}
		h.writeError(w, r, http.StatusBadGateway, "upstream_failed", err.Error())
		return
	}
	resp.Level = rv
	h.writeJSON(w, http.StatusOK, resp)
}

// Analysis handles GET /api/analysis/{key}: the full per-entity
// bundle.
func (h *Handlers) Analysis(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	a, err := h.res.Analyze(r.Context(), key)
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, "unknown_entity", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// Scorecard handles GET /api/scorecard.
func (h *Handlers) Scorecard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.res.Scorecard().Compute(r.Context()))
}

// Seasonality handles GET /api/seasonality/{key}. The key may be a
// registry key or a raw ticker symbol.
func (h *Handlers) Seasonality(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	symbol := key
	if ent, err := h.res.Registry().Resolve(key); err == nil {
		if !ent.Chartable || ent.TechnicalKey == "" {
			h.writeError(w, r, http.StatusBadRequest, "not_chartable",
				ent.Key+" has no price history")
			return
		}
		symbol = ent.TechnicalKey
	}

	res, err := h.res.Seasonality().Monthly(r.Context(), symbol)
	if err != nil {
		h.writeError(w, r, http.StatusBadGateway, "history_unavailable", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// Search handles GET /api/search?q=.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.writeError(w, r, http.StatusBadRequest, "missing_query", "q parameter is required")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"results": h.res.Registry().Search(q),
	})
}

type marketRow struct {
	Key   string                 `json:"key"`
	Name  string                 `json:"name"`
	Level resolver.ResolvedValue `json:"level"`
}

// Market handles GET /api/market?group=: live levels for a registry
// group, default fx.
func (h *Handlers) Market(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group == "" {
		group = "fx"
	}

	entries := h.res.Registry().Group(group)
	if len(entries) == 0 {
		h.writeError(w, r, http.StatusNotFound, "unknown_group", "no group: "+group)
		return
	}

	rows := make([]marketRow, 0, len(entries))
	for _, ent := range entries {
		rv, err := h.res.EntryLevel(r.Context(), ent)
		if err != nil {
			continue
		}
		rows = append(rows, marketRow{Key: ent.Key, Name: ent.Name, Level: rv})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"group": group,
		"rows":  rows,
	})
}

type overrideRequest struct {
	Value float64 `json:"value"`
	Note  string  `json:"note"`
}

// SetOverride handles PUT /api/override/{key}.
func (h *Handlers) SetOverride(w http.ResponseWriter, r *http.Request) {
	if h.overrides == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "overrides_disabled",
			"no override store configured")
		return
	}
	key := mux.Vars(r)["key"]

	ent, err := h.res.Registry().Resolve(key)
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, "unknown_entity", err.Error())
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_body", err.Error())
		return
	}

	ov, err := h.overrides.Set(r.Context(), ent.Key, req.Value, req.Note)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, ov)
}

// DeleteOverride handles DELETE /api/override/{key}.
func (h *Handlers) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	if h.overrides == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "overrides_disabled",
			"no override store configured")
		return
	}
	key := mux.Vars(r)["key"]

	if err := h.overrides.Delete(r.Context(), key); err != nil {
		if errors.Is(err, store.ErrNoOverride) {
			h.writeError(w, r, http.StatusNotFound, "no_override", err.Error())
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOverrides handles GET /api/overrides.
func (h *Handlers) ListOverrides(w http.ResponseWriter, r *http.Request) {
	if h.overrides == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "overrides_disabled",
			"no override store configured")
		return
	}
	out, err := h.overrides.All(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	if out == nil {
		out = []store.Override{}
	}
	h.writeJSON(w, http.StatusOK, out)
}
