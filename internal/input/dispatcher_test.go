package input

import (
	"sync"
	"testing"
)

func TestSubscribeDispatchCancel(t *testing.T) {
	d := NewDispatcher()
	var got []Key
	sub := d.Subscribe(func(k Key) { got = append(got, k) })
	d.Dispatch(KeyDelete)
	sub.Cancel()
	d.Dispatch(KeyEscape)
	if len(got) != 1 || got[0] != KeyDelete {
		t.Fatalf("unexpected deliveries: %v", got)
	}
	if sub.Active() || d.Len() != 0 {
		t.Fatalf("subscription should be gone")
	}
	sub.Cancel() // idempotent
	var nilSub *Subscription
	nilSub.Cancel()
}

func TestDispatchOrderFollowsSubscription(t *testing.T) {
	d := NewDispatcher()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		d.Subscribe(func(Key) { order = append(order, i) })
	}
	d.Dispatch(KeyDelete)
	for i, v := range order {
		if v != i {
			t.Fatalf("unexpected order: %v", order)
		}
	}
}

func TestHandlerMayCancelItself(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var sub *Subscription
	sub = d.Subscribe(func(Key) {
		calls++
		sub.Cancel()
	})
	d.Dispatch(KeyDelete)
	d.Dispatch(KeyDelete)
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestConcurrentSubscribe(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := d.Subscribe(func(Key) {})
			d.Dispatch(KeyEscape)
			s.Cancel()
		}()
	}
	wg.Wait()
	if d.Len() != 0 {
		t.Fatalf("expected no live subscriptions, got %d", d.Len())
	}
}

func TestGlobalIsShared(t *testing.T) {
	if Global() != Global() {
		t.Fatalf("Global must return the same dispatcher")
	}
}
