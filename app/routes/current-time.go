package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/autoroute/app/site"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// CurrentTimeView renders the clock. A websocket upgrade on the same URL
// streams a reading every tick.
func CurrentTimeView(w http.ResponseWriter, r *http.Request) {
	env := site.FromRequest(r)
	if websocket.IsWebSocketUpgrade(r) {
		streamClock(w, r, env)
		return
	}
	env.Render(w, r, http.StatusOK, "current_time", "Current time", newClock(env.Now()))
}

func streamClock(w http.ResponseWriter, r *http.Request, env *site.Env) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		env.Log.DebugContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	// The client never sends; reading only notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(env.Tick)
	defer ticker.Stop()
	for {
		if err := conn.WriteJSON(newClock(env.Now())); err != nil {
			return
		}
		select {
		case <-ticker.C:
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
