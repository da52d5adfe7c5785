package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AnshRaj112/goalledger-backend/internal/middleware"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

const (
	wsPongWait   = 90 * time.Second
	wsPingPeriod = 60 * time.Second
	wsWriteWait  = 10 * time.Second
)

var activityUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ActivityEvent is pushed to the feed for every new activity entry.
type ActivityEvent struct {
	Type     string                `json:"type"`
	Activity services.ActivityView `json:"activity"`
}

// ActivityWebSocket streams the caller's new activity entries. Browsers cannot
// set headers on WebSocket requests, so ?token= is accepted as well.
func (h *Handler) ActivityWebSocket(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "Missing session token")
		return
	}
	sess, err := h.Sessions.ValidateSession(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	conn, err := activityUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Hub.Subscribe(sess.UserID)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(4 * 1024)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			// the feed is one-way; reads only detect disconnects
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case entry, ok := <-events:
			if !ok {
				return
			}
			evt := ActivityEvent{
				Type:     "activity",
				Activity: services.ActivityView{ActivityEntry: entry, Ago: services.RelativeTime(entry.Timestamp, time.Now())},
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
