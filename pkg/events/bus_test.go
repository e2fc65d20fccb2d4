package events

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Subscribe_Publish(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	var mu sync.Mutex
	var first, second []interface{}

	bus.Subscribe(ReloadTopic, func(event interface{}) {
		mu.Lock()
		defer mu.Unlock()
		first = append(first, event)
	})
	bus.Subscribe(ReloadTopic, func(event interface{}) {
		mu.Lock()
		defer mu.Unlock()
		second = append(second, event)
	})

	bus.Publish(ReloadTopic, ReloadEvent{})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(first) == 1 && len(second) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, ReloadEvent{}, first[0])
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	var count atomic.Int32
	unsubscribe := bus.Subscribe("type.a", func(interface{}) { count.Add(1) })
	require.Equal(t, 1, bus.SubscriberCount("type.a"))

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount("type.a"))

	bus.Publish("type.a", "event")
	assert.Never(t, func() bool { return count.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestEventBus_HandlersRunSerially(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	var active, maxActive, delivered atomic.Int32
	handler := func(interface{}) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
		delivered.Add(1)
	}
	bus.Subscribe(ReloadTopic, handler)
	bus.Subscribe(ReloadTopic, handler)

	for i := 0; i < 5; i++ {
		bus.Publish(ReloadTopic, ReloadEvent{})
	}

	assert.Eventually(t, func() bool { return delivered.Load() == 10 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestEventBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	var count atomic.Int32
	bus.Subscribe("type.b", func(interface{}) { panic("boom") })
	bus.Subscribe("type.b", func(interface{}) { count.Add(1) })

	bus.Publish("type.b", nil)
	bus.Publish("type.b", nil)

	assert.Eventually(t, func() bool { return count.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestEventBus_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	assert.NotPanics(t, func() {
		bus.Publish("non.existent", "test")
	})
}

func TestEventBus_PublishAfterShutdown(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe("type.c", func(interface{}) {})
	bus.Shutdown()

	assert.NotPanics(t, func() {
		bus.Publish("type.c", "late")
	})
}

func TestEventBus_DropsWhenQueueFull(t *testing.T) {
	bus := NewEventBusWithBuffer(1)
	defer bus.Shutdown()

	release := make(chan struct{})
	bus.Subscribe("slow", func(interface{}) { <-release })

	for i := 0; i < 5; i++ {
		bus.Publish("slow", i)
	}
	close(release)

	assert.Positive(t, bus.DroppedCount())
}
