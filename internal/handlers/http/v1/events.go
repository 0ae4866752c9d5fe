package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

const writeWait = 10 * time.Second

// streamEvents upgrades to a websocket and forwards the session's
// notifications as JSON text frames until either side goes away
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := mux.Vars(r)["sid"]

	if _, err := h.service.GetSession(ctx, &initiative.GetSessionInput{SessionID: sid}); err != nil {
		writeError(w, err)
		return
	}

	// subscribed before the handshake completes so nothing published after
	// the client connects is missed
	sub := h.notifications.Subscribe(sid)
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the error response
		slog.WarnContext(ctx, "websocket upgrade failed", "session_id", sid, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	slog.InfoContext(ctx, "event stream opened", "session_id", sid)
	defer slog.InfoContext(ctx, "event stream closed", "session_id", sid)

	// drain client frames so close and pong are processed
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case n := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(n); err != nil {
				slog.DebugContext(ctx, "event stream write failed", "session_id", sid, "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
