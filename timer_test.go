package mindpaper

import (
	"reflect"
	"testing"
	"time"
)

func TestTimerQueueFiresWhenDue(t *testing.T) {
	q := NewTimerQueue(epoch)
	fired := false
	q.Schedule(100*time.Millisecond, func() { fired = true })

	if n := q.Advance(at(99 * time.Millisecond)); n != 0 || fired {
		t.Fatal("timer fired early")
	}
	if n := q.Advance(at(100 * time.Millisecond)); n != 1 || !fired {
		t.Fatal("timer did not fire at its deadline")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestTimerQueueOrder(t *testing.T) {
	q := NewTimerQueue(epoch)
	var got []string
	q.Schedule(30*time.Millisecond, func() { got = append(got, "c") })
	q.Schedule(10*time.Millisecond, func() { got = append(got, "a") })
	q.Schedule(20*time.Millisecond, func() { got = append(got, "b1") })
	q.Schedule(20*time.Millisecond, func() { got = append(got, "b2") })
	q.Advance(at(time.Second))
	want := []string{"a", "b1", "b2", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestTimerQueueCancel(t *testing.T) {
	q := NewTimerQueue(epoch)
	fired := false
	h := q.Schedule(10*time.Millisecond, func() { fired = true })
	if !q.Pending(h) {
		t.Fatal("Pending = false after Schedule")
	}
	if !q.Cancel(h) {
		t.Fatal("Cancel = false for a pending timer")
	}
	if q.Cancel(h) || q.Cancel(0) {
		t.Error("Cancel of a removed or zero handle reported true")
	}
	q.Advance(at(time.Second))
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestTimerQueueNestedSchedule(t *testing.T) {
	q := NewTimerQueue(epoch)
	var firedAt []time.Time
	q.Schedule(10*time.Millisecond, func() {
		firedAt = append(firedAt, q.Now())
		q.Schedule(5*time.Millisecond, func() { firedAt = append(firedAt, q.Now()) })
	})
	if n := q.Advance(at(20 * time.Millisecond)); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	if !firedAt[1].Equal(at(15 * time.Millisecond)) {
		t.Errorf("nested timer saw Now = %v, want +15ms", firedAt[1].Sub(epoch))
	}
	if !q.Now().Equal(at(20 * time.Millisecond)) {
		t.Errorf("Now = %v, want +20ms", q.Now().Sub(epoch))
	}
}

func TestTimerQueueIgnoresBackwardsTime(t *testing.T) {
	q := NewTimerQueue(at(time.Second))
	q.Schedule(0, func() {})
	if n := q.Advance(epoch); n != 0 {
		t.Error("advancing backwards fired a timer")
	}
	if !q.Now().Equal(at(time.Second)) {
		t.Error("advancing backwards moved the clock")
	}
}

func TestTimerQueueClear(t *testing.T) {
	q := NewTimerQueue(epoch)
	q.Schedule(time.Millisecond, func() { t.Error("cleared timer fired") })
	q.Schedule(time.Hour, func() { t.Error("cleared timer fired") })
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len = %d after Clear", q.Len())
	}
	q.Advance(at(2 * time.Hour))
}
