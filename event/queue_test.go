package event

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Send(TitleChanged{Title: "a"})
	q.Send(Resize{Width: 10, Height: 20})
	q.Send(Close{})

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(got))
	}
	if got[0] != (TitleChanged{Title: "a"}) {
		t.Errorf("first request = %v", got[0])
	}
	if got[1] != (Resize{Width: 10, Height: 20}) {
		t.Errorf("second request = %v", got[1])
	}
	if _, ok := got[2].(Close); !ok {
		t.Errorf("third request = %v", got[2])
	}

	if again := q.Drain(); again != nil {
		t.Errorf("expected empty drain, got %v", again)
	}
}

func TestQueueSendAfterClose(t *testing.T) {
	q := NewQueue()
	q.Send(Bell{})
	q.Close()

	if q.Send(Redraw{}) {
		t.Error("send after close should report false")
	}
	if n := q.Len(); n != 0 {
		t.Errorf("closed queue should be empty, has %d", n)
	}
	q.Close()
	if !q.Closed() {
		t.Error("queue should report closed")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, each = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Send(Redraw{})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != producers*each {
		t.Errorf("expected %d requests, got %d", producers*each, got)
	}
}

func TestPositional(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		ok   bool
	}{
		{"mouse", MouseInput{Action: MouseDown}, true},
		{"scroll", ScrollInput{}, true},
		{"key", KeyInput{Key: KeyEnter}, false},
		{"resize", Resized{Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Positional(tt.in); ok != tt.ok {
				t.Errorf("Positional(%T) ok = %v, want %v", tt.in, ok, tt.ok)
			}
		})
	}
}
