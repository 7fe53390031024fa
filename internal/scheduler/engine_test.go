package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/store"
)

var start = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func newLoggedInStore(c clock.Clock, tasks ...model.Task) *store.Store {
	s := store.New(model.Dataset{Tasks: tasks}, store.WithClock(c))
	s.Login("ops")
	return s
}

func dueTask(id string, in time.Duration) model.Task {
	return model.Task{ID: id, Title: "Task " + id, Status: model.TaskStatusWIP, DueDate: start.Add(in)}
}

type countingChecker struct {
	mu    sync.Mutex
	calls []time.Time
}

func (c *countingChecker) CheckReminders(now time.Time) []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, now)
	return []model.Notification{{ID: "n-fixed", Title: "fixed"}}
}

func TestEngineTicksOnInterval(t *testing.T) {
	c := clock.NewFake(start)
	s := newLoggedInStore(c, dueTask("t-1", 90*time.Minute))
	engine := NewEngine(s, c, Config{Interval: 30 * time.Second, Buffer: 8})
	engine.Start()
	defer engine.Stop()

	c.Advance(29 * time.Second)
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected event before first interval: %+v", ev)
	default:
	}

	c.Advance(time.Second)
	first := waitEvent(t, engine.C(), time.Second)
	if len(first.Notifications) != 1 || first.Notifications[0].Title != "Deadline Approaching (1 Day)" {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if !first.At.Equal(start.Add(30 * time.Second)) {
		t.Fatalf("unexpected event time: %v", first.At)
	}

	c.Advance(30 * time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if len(second.Notifications) != 1 || !second.Notifications[0].Urgent {
		t.Fatalf("unexpected second event: %+v", second)
	}

	task, _ := s.Task("t-1")
	if len(task.RemindersSent) != 2 {
		t.Fatalf("expected both tags, got %v", task.RemindersSent)
	}
}

func TestEngineTickRunsImmediately(t *testing.T) {
	c := clock.NewFake(start)
	s := newLoggedInStore(c, dueTask("t-1", 90*time.Minute))
	engine := NewEngine(s, c, Config{})

	created := engine.Tick()
	if len(created) != 1 || created[0].Title != "Deadline Approaching (1 Day)" {
		t.Fatalf("unexpected tick result: %+v", created)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Notifications[0].ID != created[0].ID {
		t.Fatalf("event does not carry the created notification: %+v", ev)
	}
	if engine.Ticks() != 1 {
		t.Fatalf("expected one tick, got %d", engine.Ticks())
	}
}

func TestEngineNoPassAfterStop(t *testing.T) {
	c := clock.NewFake(start)
	checker := &countingChecker{}
	engine := NewEngine(checker, c, Config{Interval: 30 * time.Second})
	engine.Start()
	engine.Stop()
	engine.Stop()

	c.Advance(5 * time.Minute)
	if got := engine.Tick(); got != nil {
		t.Fatalf("expected nil after stop, got %+v", got)
	}
	checker.mu.Lock()
	calls := len(checker.calls)
	checker.mu.Unlock()
	if calls != 0 {
		t.Fatalf("expected no passes after stop, got %d", calls)
	}
	if _, open := <-engine.C(); open {
		t.Fatal("expected event channel to be closed")
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	c := clock.NewFake(start)
	engine := NewEngine(&countingChecker{}, c, Config{Buffer: 1})
	for i := 0; i < 5; i++ {
		engine.Tick()
	}
	if engine.Dropped() != 4 {
		t.Fatalf("expected 4 dropped events, got %d", engine.Dropped())
	}
}

func TestEngineStopWithoutStart(t *testing.T) {
	engine := NewEngine(&countingChecker{}, clock.NewFake(start), Config{})
	engine.Stop()
	engine.Start()
	if engine.Tick() != nil {
		t.Fatal("expected stopped engine to ignore ticks")
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
