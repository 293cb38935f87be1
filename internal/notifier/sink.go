package notifier

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Sink delivers one rendered alert message to a channel.
type Sink interface {
	Send(text string) error
	Name() string
}

// Notifier fans a message out to all configured sinks, retrying each with
// exponential backoff.
type Notifier struct {
	Sinks      []Sink
	MaxRetries int
}

// NewNotifier creates a Notifier over the given sinks.
func NewNotifier(sinks ...Sink) *Notifier {
	return &Notifier{Sinks: sinks, MaxRetries: 3}
}

// Send delivers the message to every sink. A sink failing does not stop
// delivery to the others; the last error is returned.
func (n *Notifier) Send(ctx context.Context, text string) error {
	var lastErr error
	for _, s := range n.Sinks {
		if err := n.sendWithRetry(ctx, s, text); err != nil {
			log.Printf("[ERROR] %s delivery failed: %v", s.Name(), err)
			lastErr = err
		}
	}
	return lastErr
}

func (n *Notifier) sendWithRetry(ctx context.Context, s Sink, text string) error {
	var lastErr error
	for i := 0; i <= n.MaxRetries; i++ {
		if err := s.Send(text); err != nil {
			lastErr = err
			if i == n.MaxRetries {
				break
			}
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] %s send failed (attempt %d/%d): %v, retrying in %v",
				s.Name(), i+1, n.MaxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts exhausted: %w", n.MaxRetries+1, lastErr)
}
