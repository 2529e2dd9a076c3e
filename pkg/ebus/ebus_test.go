package ebus_test

import (
	"testing"
	"time"

	"github.com/roffe/speedometer/pkg/ebus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan float64) float64 {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	return 0
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		data    float64
		wantErr bool
	}{
		{
			name:  "test",
			topic: "test",
			data:  1.23,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ebus.New()
			defer b.Close()
			gotErr := b.Publish(tt.topic, tt.data)
			if tt.wantErr {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
		})
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := ebus.New()
	b.Close()
	assert.ErrorIs(t, b.Publish("speed", 1), ebus.ErrClosed)
}

func TestSubscribe(t *testing.T) {
	b := ebus.New()
	defer b.Close()

	ch := b.Subscribe("speed")
	require.NoError(t, b.Publish("speed", 3.14))
	assert.Equal(t, 3.14, receive(t, ch))
	b.Unsubscribe(ch)

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscribeReplaysLast(t *testing.T) {
	b := ebus.New()
	defer b.Close()

	require.NoError(t, b.Publish("speed", 42))
	assert.Eventually(t, func() bool {
		v, ok := b.Last("speed")
		return ok && v == 42
	}, 2*time.Second, 10*time.Millisecond)

	ch := b.Subscribe("speed")
	assert.Equal(t, 42.0, receive(t, ch))
}

func TestDuplicatesSuppressed(t *testing.T) {
	b := ebus.New()
	defer b.Close()

	ch := b.Subscribe("speed")
	for _, v := range []float64{1, 1, 1, 2} {
		require.NoError(t, b.Publish("speed", v))
	}
	assert.Equal(t, 1.0, receive(t, ch))
	assert.Equal(t, 2.0, receive(t, ch))
}

func TestSubscribeFunc(t *testing.T) {
	b := ebus.New()
	defer b.Close()

	got := make(chan float64, 1)
	cleanup := b.SubscribeFunc("test", func(v float64) {
		got <- v
	})
	require.NotNil(t, cleanup)
	require.NoError(t, b.Publish("test", 2.71))
	assert.Equal(t, 2.71, receive(t, got))
	cleanup()
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := ebus.New()
	ch := b.Subscribe("speed")
	b.Close()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber not closed")
	}
	late := b.Subscribe("speed")
	_, ok := <-late
	assert.False(t, ok)
}

func TestSubscribeOrAfterExpiry(t *testing.T) {
	b := ebus.NewWithTTL(50 * time.Millisecond)
	defer b.Close()

	require.NoError(t, b.Publish("speed", 42))
	assert.Eventually(t, func() bool {
		_, ok := b.Last("speed")
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	plain := b.Subscribe("speed")
	select {
	case v := <-plain:
		t.Fatalf("expired value %v replayed", v)
	default:
	}

	ch := b.SubscribeOr("speed", 7)
	assert.Equal(t, 7.0, receive(t, ch))

	require.NoError(t, b.Publish("speed", 8))
	assert.Equal(t, 8.0, receive(t, ch))
}

func TestSubscribeOrPrefersCache(t *testing.T) {
	b := ebus.New()
	defer b.Close()

	require.NoError(t, b.Publish("speed", 42))
	assert.Eventually(t, func() bool {
		_, ok := b.Last("speed")
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	got := make(chan float64, 1)
	cancel := b.SubscribeFuncOr("speed", 7, func(v float64) { got <- v })
	defer cancel()
	assert.Equal(t, 42.0, receive(t, got))
}
