package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	defer b.Close()
	sub := b.Subscribe()

	b.Publish("hello")
	select {
	case ev := <-sub:
		if ev != "hello" {
			t.Fatalf("unexpected event %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}
}

func TestPublishFanOut(t *testing.T) {
	b := New()
	defer b.Close()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish(42)
	for _, sub := range []<-chan Event{a, c} {
		select {
		case ev := <-sub:
			if ev != 42 {
				t.Fatalf("unexpected event %v", ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("event not delivered to all subscribers")
		}
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	b := New()
	defer b.Close()
	b.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	defer b.Close()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed")
	}
	// Publishing after unsubscribe must not panic.
	b.Publish("late")
	// Unsubscribing twice is a no-op.
	b.Unsubscribe(sub)
}

func TestCloseShutsDownSubscribers(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed")
	}
	b.Publish("after close")
	if late := b.Subscribe(); late == nil {
		t.Fatalf("subscribe after close must return a closed channel")
	} else if _, ok := <-late; ok {
		t.Fatalf("post-close subscription should be closed")
	}
	b.Close()
}
