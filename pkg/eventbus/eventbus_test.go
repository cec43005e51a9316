package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := New(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	got := make([]string, 0, 2)

	for _, label := range []string{"first", "second"} {
		label := label
		bus.Subscribe("request.created", func(ctx context.Context, event Event) error {
			mu.Lock()
			got = append(got, label+":"+event.Name())
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	bus.Publish(context.Background(), testEvent{name: "request.created"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("слушатели не были вызваны")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"first:request.created", "second:request.created"}, got)
}

func TestPublishIgnoresOtherEvents(t *testing.T) {
	bus := New(zap.NewNop())

	called := make(chan struct{}, 1)
	bus.Subscribe("equipment.scrapped", func(ctx context.Context, event Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "request.created"})

	select {
	case <-called:
		t.Fatal("слушатель вызван для чужого события")
	case <-time.After(50 * time.Millisecond):
	}
}
