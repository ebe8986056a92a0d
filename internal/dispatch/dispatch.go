package dispatch

import (
	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/metrics"
	"github.com/trixieverse/coach-backend/internal/registry"
	"github.com/trixieverse/coach-backend/internal/types"
)

// Dispatcher is the single outbound path for coach messages and
// notifications. Delivery is best-effort: no queue, no retry. An offline
// user or a backed-up outbox just loses the message.
type Dispatcher struct {
	reg *registry.Registry
	log *zap.Logger
}

func New(reg *registry.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, log: log}
}

// SendToUser delivers msg to userID's connection. Returns false when the
// user is offline or the send could not complete; callers treat that as an
// expected outcome, not an error.
func (d *Dispatcher) SendToUser(userID string, msg types.ServerMessage) bool {
	c, ok := d.reg.Lookup(userID)
	if !ok {
		metrics.MessagesDropped.Inc()
		return false
	}
	if !d.deliver(c, msg) {
		d.log.Warn("dropped message, outbox full",
			zap.String("user_id", userID),
			zap.String("type", msg.Type))
		metrics.MessagesDropped.Inc()
		return false
	}
	metrics.MessagesSent.WithLabelValues(msg.Type).Inc()
	return true
}

// Broadcast delivers msg to every registered connection. One slow or dead
// connection must not stop delivery to the rest.
func (d *Dispatcher) Broadcast(msg types.ServerMessage) {
	d.reg.Each(func(userID string, c registry.Client) {
		if d.deliver(c, msg) {
			metrics.MessagesSent.WithLabelValues(msg.Type).Inc()
		} else {
			metrics.MessagesDropped.Inc()
		}
	})
}

// deliver does a non-blocking send so a stuck writer can never stall the
// hub loop.
func (d *Dispatcher) deliver(c registry.Client, msg types.ServerMessage) (ok bool) {
	// Send on a closed outbox panics; a connection can close between the
	// registry lookup and this send, and that is still just a failed
	// delivery.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.Outbox <- msg:
		return true
	default:
		return false
	}
}
