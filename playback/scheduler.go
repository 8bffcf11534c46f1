package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

// pausedPollInterval is how often the scheduler re-checks state while no
// deadline is pending. Control calls poke the loop, so this is only a
// safety net and can be long
const pausedPollInterval = 250 * time.Millisecond

// Scheduler drives Clock.Tick from a dedicated goroutine, sleeping until
// the next deadline. Suspension points are exactly the tick boundaries:
// the loop captures the control generation before sleeping, so any
// pause/seek/speed change issued mid-sleep invalidates the pending tick.
type Scheduler struct {
	clock     *Clock
	onAdvance func(frame int)

	stopChan chan struct{}
	wakeChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler that calls onAdvance after every
// committed frame advance. onAdvance runs on the scheduler goroutine and
// should hand off heavy work rather than do it inline
func NewScheduler(clock *Clock, onAdvance func(frame int)) *Scheduler {
	return &Scheduler{
		clock:     clock,
		onAdvance: onAdvance,
		stopChan:  make(chan struct{}),
		wakeChan:  make(chan struct{}, 1),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop()
	}
}

// Stop halts the loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// Poke wakes the loop so it re-reads clock state. Call after Play, Seek
// or SetSpeed; coalesces when a wake is already pending
func (s *Scheduler) Poke() {
	select {
	case s.wakeChan <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		generation := s.clock.Generation()
		deadline, pending := s.clock.NextDeadline()

		var sleep time.Duration
		if pending {
			sleep = deadline.Sub(s.clock.tp.Now())
		} else {
			sleep = pausedPollInterval
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-s.stopChan:
				return
			case <-s.wakeChan:
				// State changed under us: recompute deadline
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				continue
			case <-timer.C:
			}
		} else {
			// Already past deadline: still honor stop before ticking
			select {
			case <-s.stopChan:
				return
			default:
			}
		}

		if !pending {
			continue
		}

		if frame, advanced := s.clock.TickIfCurrent(generation); advanced && s.onAdvance != nil {
			s.onAdvance(frame)
		}
	}
}
