package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ImagePath is the HTTP path the receiver accepts uploads on.
const ImagePath = "/images"

const ack = "ok"

// Relay pushes saved images to a receiver over a websocket. Each Send opens a
// connection, writes the file name and the image bytes, and waits for an ack.
type Relay struct {
	url    string
	dialer *websocket.Dialer
}

func NewRelay(url string) *Relay {
	return &Relay{url: url, dialer: websocket.DefaultDialer}
}

func (r *Relay) URL() string { return r.url }

func (r *Relay) Send(ctx context.Context, name string, data []byte) error {
	conn, _, err := r.dialer.DialContext(ctx, r.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", r.url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(name)); err != nil {
		return fmt.Errorf("send name: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("send image: %w", err)
	}
	_, reply, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if string(reply) != ack {
		return fmt.Errorf("receiver rejected %s: %s", name, reply)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	log.Printf("[RELAY] Sent %s (%d bytes) to %s", name, len(data), r.url)
	return nil
}

// Receiver accepts images from relays and writes them into a directory.
type Receiver struct {
	dir      string
	upgrader websocket.Upgrader
	OnImage  func(path string)

	peers map[string]time.Time
	mu    sync.RWMutex
}

func NewReceiver(dir string) *Receiver {
	return &Receiver{
		dir:   dir,
		peers: make(map[string]time.Time),
	}
}

func (rc *Receiver) add(addr string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.peers[addr] = time.Now()
	log.Printf("[RELAY] Sender connected from %s", addr)
}

func (rc *Receiver) remove(addr string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	delete(rc.peers, addr)
}

// Peers returns the number of senders currently connected.
func (rc *Receiver) Peers() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.peers)
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[RELAY] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	rc.add(r.RemoteAddr)
	defer rc.remove(r.RemoteAddr)

	path, err := rc.receive(conn)
	if err != nil {
		log.Printf("[RELAY] Receive from %s failed: %v", r.RemoteAddr, err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ack)); err != nil {
		log.Printf("[RELAY] Ack to %s failed: %v", r.RemoteAddr, err)
	}
	if rc.OnImage != nil {
		rc.OnImage(path)
	}
}

func (rc *Receiver) receive(conn *websocket.Conn) (string, error) {
	mt, name, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read name: %w", err)
	}
	if mt != websocket.TextMessage || len(name) == 0 {
		return "", errors.New("expected a file name")
	}
	mt, data, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if mt != websocket.BinaryMessage {
		return "", errors.New("expected image bytes")
	}

	if err := os.MkdirAll(rc.dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", rc.dir, err)
	}
	path := filepath.Join(rc.dir, filepath.Base(string(name)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("[RELAY] Stored %s (%d bytes)", path, len(data))
	return path, nil
}

// ListenAndServe serves the receiver on port until ctx is cancelled.
func (rc *Receiver) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(ImagePath, rc)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[RELAY] Receiver listening on port %d", port)
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
