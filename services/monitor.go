package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/pos-till/utils"
)

var ErrUnknownTopic = errors.New("topic tidak dikenal")

// Monitor runs Task once immediately and then every Interval until stopped.
// Task errors are logged and swallowed; screens tolerate stale data between ticks.
type Monitor struct {
	Name     string
	Interval time.Duration
	Task     func(ctx context.Context) error
	StopChan chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

func NewMonitor(name string, interval time.Duration, task func(ctx context.Context) error) *Monitor {
	return &Monitor{
		Name:     name,
		Interval: interval,
		Task:     task,
		StopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-m.StopChan
		cancel()
	}()

	go func() {
		defer close(m.done)
		m.tick(ctx)

		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.tick(ctx)
			case <-m.StopChan:
				return
			}
		}
	}()
}

// Stop cancels an in-flight tick and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.StopChan)
		<-m.done
	})
}

func (m *Monitor) tick(ctx context.Context) {
	if err := m.Task(ctx); err != nil && ctx.Err() == nil {
		utils.ErrorLogger.Warnf("monitor %s: %v", m.Name, err)
	}
}

// MonitorRegistry runs one monitor per topic while at least one subscriber
// holds it. The first Acquire starts it, the last release stops it.
type MonitorRegistry struct {
	mu        sync.Mutex
	factories map[string]func() *Monitor
	running   map[string]*Monitor
	refs      map[string]int
}

func NewMonitorRegistry() *MonitorRegistry {
	return &MonitorRegistry{
		factories: make(map[string]func() *Monitor),
		running:   make(map[string]*Monitor),
		refs:      make(map[string]int),
	}
}

func (r *MonitorRegistry) Register(topic string, factory func() *Monitor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[topic] = factory
}

// Acquire subscribes to topic. The returned release func is safe to call more than once.
func (r *MonitorRegistry) Acquire(topic string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	factory, ok := r.factories[topic]
	if !ok {
		return nil, ErrUnknownTopic
	}
	r.refs[topic]++
	if r.refs[topic] == 1 {
		m := factory()
		r.running[topic] = m
		m.Start()
		utils.InfoLogger.Debugf("monitor %s started", topic)
	}
	held := r.running[topic]

	var once sync.Once
	return func() {
		once.Do(func() { r.release(topic, held) })
	}, nil
}

// release drops one reference on held. A release left over from before
// StopAll belongs to a monitor that is already gone and is ignored.
func (r *MonitorRegistry) release(topic string, held *Monitor) {
	r.mu.Lock()
	if r.running[topic] != held {
		r.mu.Unlock()
		return
	}
	r.refs[topic]--
	var m *Monitor
	if r.refs[topic] <= 0 {
		delete(r.refs, topic)
		m = r.running[topic]
		delete(r.running, topic)
	}
	r.mu.Unlock()

	if m != nil {
		m.Stop()
		utils.InfoLogger.Debugf("monitor %s stopped", topic)
	}
}

// Subscribers reports how many holders a topic has.
func (r *MonitorRegistry) Subscribers(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs[topic]
}

// StopAll is used on shutdown.
func (r *MonitorRegistry) StopAll() {
	r.mu.Lock()
	running := r.running
	r.running = make(map[string]*Monitor)
	r.refs = make(map[string]int)
	r.mu.Unlock()

	for _, m := range running {
		m.Stop()
	}
}
