package broker

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	conn   *nats.Conn
	connMu sync.RWMutex
)

var ErrNotConnected = errors.New("broker is not connected")

// InitProducer connects to the NATS server. The caller decides whether a
// failed connection is fatal; the rest of the package degrades to no-ops.
func InitProducer(url string) error {
	nc, err := nats.Connect(url,
		nats.Name("trackit-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return err
	}

	connMu.Lock()
	conn = nc
	connMu.Unlock()

	log.Printf("Connected to NATS at %s", url)
	return nil
}

// PublishMessage publishes a payload to a subject. Returns ErrNotConnected
// when no broker connection is available.
func PublishMessage(subject string, data []byte) error {
	connMu.RLock()
	nc := conn
	connMu.RUnlock()

	if nc == nil {
		return ErrNotConnected
	}

	return nc.Publish(subject, data)
}

// Subscribe registers a handler for a subject. Used by the WebSocket service
// to forward entity events to connected clients.
func Subscribe(subject string, handler func(msg *nats.Msg)) (*nats.Subscription, error) {
	connMu.RLock()
	nc := conn
	connMu.RUnlock()

	if nc == nil {
		return nil, ErrNotConnected
	}

	return nc.Subscribe(subject, handler)
}

// IsConnected reports whether a broker connection has been established.
func IsConnected() bool {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn != nil && conn.IsConnected()
}

// CloseProducer drains and closes the NATS connection.
func CloseProducer() {
	connMu.Lock()
	defer connMu.Unlock()
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}
