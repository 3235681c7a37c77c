// Package validate implements integration validation (C4): it loads the
// generated components via their registration record, constructs an
// in-process message bus, drives synthetic inputs through the component
// graph, and tears the bus down, per spec.md §5's
// constructed/populated/exercised/torn-down lifecycle.
package validate

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// Bus wraps one embedded NATS server plus an in-process connection, started
// fresh for each validation run. Grounded on cmd/semspec/app.go's
// startNATS, which the teacher's own config.NATSConfig.Embedded field
// declares but never actually wires to a running server — this is that
// wiring, scoped to one validation run instead of the whole process
// lifetime.
type Bus struct {
	server *server.Server
	conn   *nats.Conn
}

// StartBus starts an embedded NATS server bound to a random port and
// connects to it.
func StartBus() (*Bus, error) {
	opts := &server.Options{
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("validate: create embedded bus: %w", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("validate: embedded bus failed to start")
	}

	conn, err := nats.Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("validate: connect to embedded bus: %w", err)
	}

	return &Bus{server: ns, conn: conn}, nil
}

// Publish sends a synthetic test message on subject.
func (b *Bus) Publish(subject string, data []byte) error {
	return b.conn.Publish(subject, data)
}

// Subscribe registers a handler for subject, returning an unsubscribe func.
func (b *Bus) Subscribe(subject string, handler func(*nats.Msg)) (func(), error) {
	sub, err := b.conn.Subscribe(subject, handler)
	if err != nil {
		return nil, fmt.Errorf("validate: subscribe %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Request performs a synchronous request/reply round trip, used by
// contract-phase checks on reply-required ports.
func (b *Bus) Request(subject string, data []byte, timeout time.Duration) (*nats.Msg, error) {
	return b.conn.Request(subject, data, timeout)
}

// ClientURL returns the embedded server's client connection URL, used to
// point the compiled harness subprocess at this run's bus.
func (b *Bus) ClientURL() string {
	return b.server.ClientURL()
}

// Shutdown drains the connection and stops the embedded server.
func (b *Bus) Shutdown() {
	if b.conn != nil {
		b.conn.Drain()
		b.conn.Close()
	}
	if b.server != nil {
		b.server.Shutdown()
		b.server.WaitForShutdown()
	}
}
