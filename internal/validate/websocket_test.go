package validate

import (
	"testing"
	"time"
)

func TestWebSocketProbeHandshakeSucceeds(t *testing.T) {
	p := NewWebSocketProbe()
	defer p.Close()

	ok, err := p.Handshake(2 * time.Second)
	if err != nil {
		t.Fatalf("Handshake failed: %v", err)
	}
	if !ok {
		t.Error("expected the loopback handshake to complete")
	}
}
