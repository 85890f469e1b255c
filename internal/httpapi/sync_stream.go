package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hotel-audit-pro/internal/appstate"
	"hotel-audit-pro/pkg/logger"
)

const (
	defaultSyncPoll = 250 * time.Millisecond
	syncWriteWait   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SyncStream pushes the sync indicator over a websocket: once on connect and
// again every time it changes.
func (h Handlers) SyncStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		return
	}
	defer conn.Close()

	log := logger.FromGin(c)
	// The server read timeout would otherwise close an idle stream.
	_ = conn.SetReadDeadline(time.Time{})

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	poll := h.SyncPoll
	if poll <= 0 {
		poll = defaultSyncPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var last appstate.SyncStatus
	sent := false
	for {
		if st := h.App.Status(); !sent || !st.Equal(last) {
			_ = conn.SetWriteDeadline(time.Now().Add(syncWriteWait))
			if err := conn.WriteJSON(st); err != nil {
				log.Debug("sync stream closed", "err", err)
				return
			}
			last, sent = st, true
		}
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
