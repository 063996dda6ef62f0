package bus

import (
	"reflect"
	"testing"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	var b Bus[int]
	var got []string

	b.Subscribe(func(v int) { got = append(got, "a") })
	b.Subscribe(func(v int) { got = append(got, "b") })
	b.Subscribe(func(v int) { got = append(got, "c") })

	b.Publish(1)

	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("delivery order = %v, expected %v", got, expected)
	}
}

func TestBusCancel(t *testing.T) {
	var b Bus[int]
	count := 0

	cancel := b.Subscribe(func(int) { count++ })
	b.Publish(1)
	cancel()
	cancel() // second cancel is a no-op
	b.Publish(2)

	if count != 1 {
		t.Errorf("handler called %d times, expected 1", count)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", b.Len())
	}
}

func TestBusSnapshotDuringDispatch(t *testing.T) {
	var b Bus[int]
	var got []string

	var cancelB func()
	b.Subscribe(func(int) {
		got = append(got, "a")
		cancelB()
		b.Subscribe(func(int) { got = append(got, "late") })
	})
	cancelB = b.Subscribe(func(int) { got = append(got, "b") })

	b.Publish(1)

	// b was a subscriber when the publish began, late was not.
	expected := []string{"a", "b"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("first publish = %v, expected %v", got, expected)
	}

	got = nil
	cancelB = func() {}
	b.Publish(2)
	expected = []string{"a", "late"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("second publish = %v, expected %v", got, expected)
	}
}

func TestKeyedRouting(t *testing.T) {
	var k Keyed[int, string]
	var got []string

	k.Subscribe(1, func(s string) { got = append(got, "one:"+s) })
	cancel := k.Subscribe(2, func(s string) { got = append(got, "two:"+s) })

	k.Publish(1, "x")
	k.Publish(2, "y")
	k.Publish(3, "z")

	expected := []string{"one:x", "two:y"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("routed = %v, expected %v", got, expected)
	}

	cancel()
	if k.Has(2) {
		t.Error("Has(2) should be false after cancel")
	}
	if !k.Has(1) {
		t.Error("Has(1) should be true")
	}

	k.Reset()
	if k.Has(1) {
		t.Error("Has(1) should be false after Reset")
	}
}
