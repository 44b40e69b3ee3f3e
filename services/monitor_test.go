package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-till/kds"
)

func TestMonitor_TicksImmediatelyAndStops(t *testing.T) {
	var ticks int32
	m := NewMonitor("test", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return errors.New("backend down")
	})
	m.Start()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&ticks) == 1 }, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ticks))
}

func TestMonitor_KeepsTickingAfterErrors(t *testing.T) {
	var ticks int32
	m := NewMonitor("test", 5*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return errors.New("timeout")
	})
	m.Start()
	defer m.Stop()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&ticks) >= 3 }, time.Second, 5*time.Millisecond)
}

func TestMonitorRegistry_RefCounts(t *testing.T) {
	var started, running int32
	r := NewMonitorRegistry()
	r.Register(kds.TopicKitchen, func() *Monitor {
		atomic.AddInt32(&started, 1)
		return NewMonitor(kds.TopicKitchen, time.Hour, func(ctx context.Context) error {
			atomic.StoreInt32(&running, 1)
			return nil
		})
	})

	_, err := r.Acquire("bar")
	assert.ErrorIs(t, err, ErrUnknownTopic)

	release1, err := r.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	release2, err := r.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&started))
	assert.Equal(t, 2, r.Subscribers(kds.TopicKitchen))

	release1()
	release1()
	assert.Equal(t, 1, r.Subscribers(kds.TopicKitchen))

	release2()
	assert.Equal(t, 0, r.Subscribers(kds.TopicKitchen))

	release3, err := r.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	defer release3()
	assert.Equal(t, int32(2), atomic.LoadInt32(&started))
}

func TestMonitorRegistry_StaleReleaseAfterStopAll(t *testing.T) {
	var monitors []*Monitor
	r := NewMonitorRegistry()
	r.Register(kds.TopicKitchen, func() *Monitor {
		m := NewMonitor(kds.TopicKitchen, time.Hour, func(ctx context.Context) error { return nil })
		monitors = append(monitors, m)
		return m
	})

	old, err := r.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	r.StopAll()
	assert.Equal(t, 0, r.Subscribers(kds.TopicKitchen))

	release, err := r.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	defer release()
	require.Len(t, monitors, 2)

	old()
	assert.Equal(t, 1, r.Subscribers(kds.TopicKitchen))
	select {
	case <-monitors[1].StopChan:
		t.Fatal("monitor baru ikut berhenti")
	default:
	}
}

type recordingConn struct {
	msgs chan []byte
}

func (c *recordingConn) WriteMessage(_ int, data []byte) error {
	select {
	case c.msgs <- data:
	default:
	}
	return nil
}

func (c *recordingConn) Close() error { return nil }

func TestTill_KitchenMonitorBroadcasts(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.setKitchen(kitchenOrder(1, "", "pending"))
	till := newTestTill(t, srv, true)

	conn := &recordingConn{msgs: make(chan []byte, 16)}
	till.Hub.RegisterClient(conn, kds.TopicKitchen)

	release, err := till.Monitors.Acquire(kds.TopicKitchen)
	require.NoError(t, err)
	defer release()

	select {
	case msg := <-conn.msgs:
		assert.Contains(t, string(msg), `"event":"kitchen_update"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no kitchen_update broadcast")
	}
}
