package sinks

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockcoast/internal/sims/rockcoast"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestStreamBroadcastsSnapshots(t *testing.T) {
	stream := NewStream(nil)
	srv := httptest.NewServer(stream)
	defer srv.Close()
	defer stream.Close(context.Background())

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return stream.Clients() == 1 }, time.Second, 10*time.Millisecond)

	want := sampleSnapshot()
	require.NoError(t, stream.WriteSnapshot(want))

	var got rockcoast.Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, want, got)
}

func TestStreamSendsLatestToNewClients(t *testing.T) {
	stream := NewStream(nil)
	srv := httptest.NewServer(stream)
	defer srv.Close()
	defer stream.Close(context.Background())

	want := sampleSnapshot()
	require.NoError(t, stream.WriteSnapshot(want))

	conn := dial(t, srv)
	defer conn.Close()

	var got rockcoast.Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, want, got)
}

func TestStreamForgetsClosedClients(t *testing.T) {
	stream := NewStream(nil)
	srv := httptest.NewServer(stream)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return stream.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return stream.Clients() == 0 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, stream.WriteSnapshot(sampleSnapshot()))
}
