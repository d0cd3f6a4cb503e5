package net

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + ImagePath
}

func TestRelayDeliversImage(t *testing.T) {
	dir := t.TempDir()
	rc := NewReceiver(dir)
	stored := make(chan string, 1)
	rc.OnImage = func(path string) { stored <- path }

	srv := httptest.NewServer(rc)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload := []byte("\x89PNG fake image")
	require.NoError(t, NewRelay(wsURL(srv.URL)).Send(ctx, "sketch.png", payload))

	select {
	case path := <-stored:
		assert.Equal(t, filepath.Join(dir, "sketch.png"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	case <-time.After(5 * time.Second):
		t.Fatal("receiver never stored the image")
	}
}

func TestReceiverStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	rc := NewReceiver(dir)
	srv := httptest.NewServer(rc)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, NewRelay(wsURL(srv.URL)).Send(ctx, "../../escape.png", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
}

func TestReceiverRejectsTextPayload(t *testing.T) {
	rc := NewReceiver(t.TempDir())
	srv := httptest.NewServer(rc)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("a.png")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not binary")))
	_, reply, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.NotEqual(t, ack, string(reply))
}

func TestRelayDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := NewRelay("ws://127.0.0.1:1/images").Send(ctx, "a.png", []byte("x"))
	assert.Error(t, err)
}

func TestReceiverURL(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.4:8090/images", ReceiverURL("192.168.1.4", 8090))
	assert.Equal(t, "ws://[::1]:8090/images", ReceiverURL("::1", 8090))
}
