package clock

import (
	"slices"
	"sync"
	"time"
)

// Fake is a manually advanced clock. AfterFunc callbacks run synchronously
// inside Advance, on the caller's goroutine, in deadline order. Ticker
// deliveries are non-blocking like time.Ticker: a tick is dropped when the
// previous one has not been received yet.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	tickers []*fakeTicker
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{fake: f, at: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{fake: f, period: d, next: f.now.Add(d), ch: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer and ticker that
// falls due on the way.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for f.fireNext(target) {
	}
}

// Set moves the clock to t. Moving backwards only changes Now.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	if !t.After(f.now) {
		f.now = t
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	for f.fireNext(t) {
	}
}

// PendingTimers reports how many one-shot timers are armed.
func (f *Fake) PendingTimers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

func (f *Fake) fireNext(target time.Time) bool {
	f.mu.Lock()

	var (
		timer  *fakeTimer
		ticker *fakeTicker
		at     = target
		found  bool
	)
	for _, t := range f.timers {
		if !t.at.After(at) && (!found || t.at.Before(at)) {
			timer, ticker, at, found = t, nil, t.at, true
		}
	}
	for _, t := range f.tickers {
		if !t.next.After(at) && (!found || t.next.Before(at)) {
			timer, ticker, at, found = nil, t, t.next, true
		}
	}

	if !found {
		f.now = target
		f.mu.Unlock()
		return false
	}

	f.now = at
	if timer != nil {
		f.removeTimerLocked(timer)
		fn := timer.fn
		f.mu.Unlock()
		fn()
		return true
	}

	ticker.next = ticker.next.Add(ticker.period)
	select {
	case ticker.ch <- at:
	default:
	}
	f.mu.Unlock()
	return true
}

func (f *Fake) removeTimerLocked(t *fakeTimer) bool {
	i := slices.Index(f.timers, t)
	if i < 0 {
		return false
	}
	f.timers = slices.Delete(f.timers, i, i+1)
	return true
}

type fakeTimer struct {
	fake *Fake
	at   time.Time
	fn   func()
}

func (t *fakeTimer) Stop() bool {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	return t.fake.removeTimerLocked(t)
}

type fakeTicker struct {
	fake   *Fake
	period time.Duration
	next   time.Time
	ch     chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	if i := slices.Index(t.fake.tickers, t); i >= 0 {
		t.fake.tickers = slices.Delete(t.fake.tickers, i, i+1)
	}
}
