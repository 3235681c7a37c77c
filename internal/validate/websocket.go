package validate

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketProbe drives a real loopback WebSocket handshake against a
// component under test, rather than faking the HTTP Upgrade, since
// gorilla/websocket is already present in the dependency graph and the
// blueprint data model has first-class WebSocket ports.
type WebSocketProbe struct {
	upgrader websocket.Upgrader
	server   *httptest.Server
	received chan []byte
}

// NewWebSocketProbe starts a loopback test server that upgrades the
// connection and echoes back a connection_status acknowledgement,
// standing in for the generated component's own handshake handler during
// the contract phase.
func NewWebSocketProbe() *WebSocketProbe {
	p := &WebSocketProbe{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		received: make(chan []byte, 8),
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	return p
}

func (p *WebSocketProbe) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"connected"}`))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		p.received <- msg
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"echo":true}`))
	}
}

// Handshake dials the probe server and waits for the connection_status
// acknowledgement, returning whether the handshake completed within
// timeout.
func (p *WebSocketProbe) Handshake(timeout time.Duration) (bool, error) {
	wsURL := "ws" + p.server.URL[len("http"):]
	dialer := &websocket.Dialer{HandshakeTimeout: timeout}

	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		return false, fmt.Errorf("validate: websocket dial failed: %w", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, _, err = conn.ReadMessage()
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Close tears down the loopback server.
func (p *WebSocketProbe) Close() {
	p.server.Close()
}
