// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

const (
	TopicConfig = "config"
	TopicGeo    = "geo"
)

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T(TopicConfig, TopicGeo))

	msg := conn.NewMessage(T(TopicConfig, TopicGeo), "hello")
	conn.Publish(msg)

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "hello" {
			t.Errorf("expected payload 'hello', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func TestQueueFull_DropsOldestRatherThanBlock(t *testing.T) {
	b := NewBus(1)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(T(TopicConfig, TopicGeo))

	conn.Publish(conn.NewMessage(T(TopicConfig, TopicGeo), "first"))
	conn.Publish(conn.NewMessage(T(TopicConfig, TopicGeo), "second"))

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "second" {
			t.Fatalf("expected the queue to keep the newest message, got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

// -----------------------------------------------------------------------------
// Wildcards
// -----------------------------------------------------------------------------

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a", "+", "c"))
	s2 := c.Subscribe(T("a", "+", "+"))
	s3 := c.Subscribe(T("a", "b", "+"))
	sNo := c.Subscribe(T("a", "+", "d"))

	c.Publish(b.NewMessage(T("a", "b", "c"), "m1"))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "x", "y"), "m2"))

	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "c"), "m3"))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_NoMatchCases(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")

	s := c.Subscribe(T("a", "+", "c"))

	c.Publish(b.NewMessage(T("a", "c"), "x"))
	expectNoMessage(t, s)

	c.Publish(b.NewMessage(T("a", "b", "d"), "y"))
	expectNoMessage(t, s)
}

// TestWildcard_SettingKindFanOut exercises the exact shape settings.Bus builds its
// load/save subscriptions with: a fixed two-token prefix plus a trailing
// wildcard that matches every setting kind.
func TestWildcard_SettingKindFanOut(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")

	all := c.Subscribe(T("setting", "save", "+"))

	c.Publish(b.NewMessage(T("setting", "save", "bite_point"), nil))
	c.Publish(b.NewMessage(T("setting", "save", "clutch_mode"), nil))
	c.Publish(b.NewMessage(T("setting", "load", "bite_point"), nil))

	select {
	case m := <-all.Channel():
		if m.Topic[2] != "bite_point" {
			t.Fatalf("expected first save to be bite_point, got %v", m.Topic[2])
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for first save notification")
	}
	select {
	case m := <-all.Channel():
		if m.Topic[2] != "clutch_mode" {
			t.Fatalf("expected second save to be clutch_mode, got %v", m.Topic[2])
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for second save notification")
	}
	expectNoMessage(t, all) // the load topic must not fan into the save subscription
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	sub := c.Subscribe(T(TopicConfig, TopicGeo))
	sub.Unsubscribe()

	c.Publish(b.NewMessage(T(TopicConfig, TopicGeo), "late"))

	select {
	case _, ok := <-sub.Channel():
		if ok {
			t.Fatal("expected no delivery after unsubscribe")
		}
	case <-time.After(60 * time.Millisecond):
	}
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func expectOneOf(t *testing.T, sub *Subscription, want string) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		s, ok := got.Payload.(string)
		if !ok || s != want {
			t.Fatalf("unexpected payload: %v (want %q)", got.Payload, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNoMessage(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected message: %#v", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTopic_InvalidTokenPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for non-comparable token, got none")
		}
	}()

	// []byte is not comparable, so T should panic
	_ = T([]byte{1, 2, 3})
}
