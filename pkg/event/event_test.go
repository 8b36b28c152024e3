package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/salesdesk/pkg/event"
	"github.com/shashiranjanraj/salesdesk/pkg/workerpool"
)

func TestPublishSynchronous(t *testing.T) {
	bus := event.NewBus(nil)

	var got []string
	bus.Listen(func(e event.Event) {
		got = append(got, e.Name+":"+e.Payload.(string))
	}, "order.created", "order.removed")

	bus.Publish("order.created", "a")
	bus.Publish("order.updated", "ignored")
	bus.Publish("order.removed", "b")

	assert.Equal(t, []string{"order.created:a", "order.removed:b"}, got)

	bus.Flush()
	bus.Publish("order.created", "c")
	assert.Len(t, got, 2)
}

func TestPublishOnPool(t *testing.T) {
	pool := workerpool.New("events", 2)
	defer pool.Shutdown()
	bus := event.NewBus(pool)

	var mu sync.Mutex
	seen := 0
	bus.Listen(func(event.Event) {
		mu.Lock()
		seen++
		mu.Unlock()
	}, "order.created")

	for i := 0; i < 3; i++ {
		bus.Publish("order.created", i)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == 3
	}, time.Second, 5*time.Millisecond)
}
