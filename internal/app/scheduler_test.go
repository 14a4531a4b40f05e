package app

import (
	"testing"
	"time"
)

func TestTickScheduler_DrainAndFire(t *testing.T) {
	s := NewTickScheduler()
	var ran []string

	s.Schedule(time.Second, func() { ran = append(ran, "first") })
	s.Schedule(2*time.Second, func() { ran = append(ran, "second") })

	if s.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", s.Pending())
	}
	if s.Drain() == nil {
		t.Error("Drain() should return the queued ticks")
	}
	if s.Drain() != nil {
		t.Error("second Drain() should be empty")
	}

	if !s.Fire(2) {
		t.Fatal("Fire(2) = false")
	}
	if s.Fire(2) {
		t.Error("a task must run only once")
	}
	if s.Fire(99) {
		t.Error("Fire(unknown) = true")
	}
	if len(ran) != 1 || ran[0] != "second" {
		t.Errorf("ran = %v, want [second]", ran)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
}

func TestTickScheduler_FireAllRunsInOrderIncludingNewTasks(t *testing.T) {
	s := NewTickScheduler()
	var ran []int

	s.Schedule(time.Second, func() {
		ran = append(ran, 1)
		s.Schedule(time.Second, func() { ran = append(ran, 3) })
	})
	s.Schedule(time.Second, func() { ran = append(ran, 2) })

	if n := s.FireAll(); n != 3 {
		t.Errorf("FireAll() = %d, want 3", n)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if i >= len(ran) || ran[i] != want[i] {
			t.Fatalf("ran = %v, want %v", ran, want)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after FireAll", s.Pending())
	}
}
