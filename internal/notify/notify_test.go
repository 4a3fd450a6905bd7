package notify

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	channel string
	err     error
	delay   time.Duration
	calls   int64
}

func (f *fakeSender) Channel() string { return f.channel }

func (f *fakeSender) Send(ctx context.Context, recipient, subject, body string) error {
	atomic.AddInt64(&f.calls, 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func TestSenderLookupIsCaseInsensitive(t *testing.T) {
	d, err := NewDispatcher(time.Second, 2, &fakeSender{channel: "email"})
	require.NoError(t, err)
	defer d.Close()

	for _, name := range []string{"email", "EMAIL", "Email", " email "} {
		s, err := d.Sender(name)
		require.NoError(t, err, "lookup %q", name)
		assert.Equal(t, "email", s.Channel())
	}
}

func TestSenderLookupUnsupportedChannel(t *testing.T) {
	d, err := NewDispatcher(time.Second, 2, &fakeSender{channel: "email"})
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Sender("telegram")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedChannel)
}

func TestDispatchSwallowsTransportErrors(t *testing.T) {
	failing := &fakeSender{channel: "email", err: errors.New("smtp down")}
	d, err := NewDispatcher(time.Second, 2, failing)
	require.NoError(t, err)
	defer d.Close()

	// must not panic or propagate anything
	d.Dispatch("email", "user@example.org", "subject", "body")
	d.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt64(&failing.calls))
}

func TestDispatchUnknownChannelIsNoop(t *testing.T) {
	known := &fakeSender{channel: "email"}
	d, err := NewDispatcher(time.Second, 2, known)
	require.NoError(t, err)
	defer d.Close()

	d.Dispatch("pigeon", "user@example.org", "subject", "body")
	d.Wait()
	assert.EqualValues(t, 0, atomic.LoadInt64(&known.calls))
}

func TestDispatchBoundsSlowTransports(t *testing.T) {
	slow := &fakeSender{channel: "sms", delay: 5 * time.Second}
	d, err := NewDispatcher(50*time.Millisecond, 2, slow)
	require.NoError(t, err)

	start := time.Now()
	d.Dispatch("sms", "5511999990000", "", "hi")
	d.Wait()
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestChannels(t *testing.T) {
	d, err := NewDispatcher(time.Second, 2,
		&fakeSender{channel: "email"}, &fakeSender{channel: "sms"})
	require.NoError(t, err)
	defer d.Close()

	assert.ElementsMatch(t, []string{"email", "sms"}, d.Channels())
}
