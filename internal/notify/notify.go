// Package notify delivers user-facing messages over pluggable channels.
// Delivery is best effort: the dispatcher bounds each send with a timeout,
// logs failures and never surfaces them to the caller.
package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrUnsupportedChannel is returned when no sender is registered for a
// channel name.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// Sender delivers a single message over one transport.
type Sender interface {
	// Channel returns the lower-case channel identifier (email, sms, ...).
	Channel() string
	// Send delivers the message. The context carries the dispatch deadline.
	Send(ctx context.Context, recipient, subject, body string) error
}

// Dispatcher resolves channel names to senders and runs sends on a bounded
// worker pool. The sender set is fixed at construction; there is no global
// mutable registry.
type Dispatcher struct {
	senders map[string]Sender
	pool    *ants.Pool
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher builds a dispatcher over the given senders. Channel lookup
// is case-insensitive. timeout bounds each send; poolSize bounds the number
// of in-flight sends.
func NewDispatcher(timeout time.Duration, poolSize int, senders ...Sender) (*Dispatcher, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, errors.Wrap(err, "notify pool")
	}
	d := &Dispatcher{
		senders: make(map[string]Sender, len(senders)),
		pool:    pool,
		timeout: timeout,
	}
	for _, s := range senders {
		d.senders[strings.ToLower(s.Channel())] = s
	}
	return d, nil
}

// Sender returns the sender registered for channel.
func (d *Dispatcher) Sender(channel string) (Sender, error) {
	s, ok := d.senders[strings.ToLower(strings.TrimSpace(channel))]
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedChannel, channel)
	}
	return s, nil
}

// Channels lists the registered channel names.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.senders))
	for name := range d.senders {
		names = append(names, name)
	}
	return names
}

// Dispatch sends the message asynchronously. Unknown channels, transport
// errors and timeouts are logged as warnings; the caller always proceeds.
func (d *Dispatcher) Dispatch(channel, recipient, subject, body string) {
	sender, err := d.Sender(channel)
	if err != nil {
		zap.L().Warn("notify: dispatch to unknown channel",
			zap.String("channel", channel), zap.Error(err))
		return
	}

	d.wg.Add(1)
	err = d.pool.Submit(func() {
		defer d.wg.Done()
		d.send(sender, recipient, subject, body)
	})
	if err != nil {
		d.wg.Done()
		zap.L().Warn("notify: pool submit failed",
			zap.String("channel", channel), zap.Error(err))
	}
}

func (d *Dispatcher) send(sender Sender, recipient, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- sender.Send(ctx, recipient, subject, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			zap.L().Warn("notify: send failed",
				zap.String("channel", sender.Channel()),
				zap.String("recipient", recipient),
				zap.Error(err))
			return
		}
		zap.L().Info("notify: sent",
			zap.String("channel", sender.Channel()),
			zap.String("recipient", recipient),
			zap.String("subject", subject))
	case <-ctx.Done():
		zap.L().Warn("notify: send timeout",
			zap.String("channel", sender.Channel()),
			zap.String("recipient", recipient))
	}
}

// Wait blocks until all dispatched sends have finished or timed out.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close drains pending sends and releases the worker pool.
func (d *Dispatcher) Close() {
	d.wg.Wait()
	d.pool.Release()
}
