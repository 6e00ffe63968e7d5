package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/resolver"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
	},
}

type tickerFrame struct {
	At     time.Time                         `json:"at"`
	Levels map[string]resolver.ResolvedValue `json:"levels"`
}

// Ticker handles GET /ws/ticker: pushes the watched levels every
// interval until the client goes away. Keys default to the fx group
// and can be narrowed with ?keys=a,b,c.
func (h *Handlers) Ticker(interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys := h.tickerKeys(r)
		if len(keys) == 0 {
			h.writeError(w, r, http.StatusBadRequest, "no_keys", "nothing to watch")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		// Drain client frames so pings and close frames are handled.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		tick := time.NewTicker(interval)
		defer tick.Stop()

		for {
			frame := tickerFrame{At: time.Now().UTC(), Levels: map[string]resolver.ResolvedValue{}}
			for _, key := range keys {
				rv, err := h.res.CurrentLevel(r.Context(), key)
				if err != nil {
					continue
				}
				frame.Levels[key] = rv
			}

			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(frame); err != nil {
				log.Debug().Err(err).Msg("ticker client gone")
				return
			}

			select {
			case <-tick.C:
			case <-r.Context().Done():
				return
			}
		}
	}
}

func (h *Handlers) tickerKeys(r *http.Request) []string {
	if raw := r.URL.Query().Get("keys"); raw != "" {
		var keys []string
		for _, k := range strings.Split(raw, ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if _, err := h.res.Registry().Resolve(k); err == nil {
				keys = append(keys, k)
			}
		}
		return keys
	}

	var keys []string
	for _, ent := range h.res.Registry().Group("fx") {
		keys = append(keys, ent.Key)
	}
	return keys
}
