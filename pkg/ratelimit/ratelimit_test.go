package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiter_BurstThenRefill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(60, 2, time.Hour, clock) // one per second

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d within burst denied", i)
		}
	}

	ok, wait := l.Allow("1.2.3.4")
	if ok {
		t.Fatal("third request should be limited")
	}
	if wait <= 0 || wait > time.Second {
		t.Fatalf("unexpected wait %s", wait)
	}

	// Other keys are independent.
	if ok, _ := l.Allow("5.6.7.8"); !ok {
		t.Fatal("separate key limited")
	}

	clock.Advance(time.Second)
	if ok, _ := l.Allow("1.2.3.4"); !ok {
		t.Fatal("token should have refilled")
	}
}

func TestLimiter_EvictsIdleKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(60, 1, time.Minute, clock)

	l.Allow("a")
	l.Allow("b")
	if l.Len() != 2 {
		t.Fatalf("len = %d", l.Len())
	}

	clock.Advance(30 * time.Second)
	l.Allow("b")

	clock.Advance(40 * time.Second)
	l.Allow("c")

	// "a" idle for 70s is gone; "b" idle for 40s stays.
	if l.Len() != 2 {
		t.Fatalf("len after sweep = %d", l.Len())
	}
}
