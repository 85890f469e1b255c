package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"hotel-audit-pro/internal/appstate"
	"hotel-audit-pro/internal/persist"
	"hotel-audit-pro/internal/session"
	"hotel-audit-pro/internal/store"
)

func TestSyncStream_PushesChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := clockwork.NewFakeClock()
	app := appstate.New(store.NewMemory(), session.NewMemory(clock), appstate.Options{Persist: persist.Options{Clock: clock}})
	h := Handlers{App: app, SyncPoll: 10 * time.Millisecond}

	r := gin.New()
	r.GET("/sync/stream", h.SyncStream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sync/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var st appstate.SyncStatus
	require.NoError(t, conn.ReadJSON(&st))
	require.False(t, st.Loaded)
	require.Len(t, st.Collections, 8)

	require.NoError(t, app.Start(context.Background()))

	// states load one by one; partial updates may arrive first
	for !st.Loaded {
		require.NoError(t, conn.ReadJSON(&st))
	}
	require.False(t, st.Saving)
}

func TestSyncStream_RejectsPlainRequests(t *testing.T) {
	h := Handlers{}
	require.Equal(t, http.StatusBadRequest, serve(h.SyncStream).Code)
}
