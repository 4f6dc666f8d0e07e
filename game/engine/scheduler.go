package engine

import (
	"sort"
	"time"
)

// scheduledTask is one deferred commit: a function that runs once its due
// time has passed. Tasks stand in for the original's timer callbacks so tests
// can advance virtual time instead of sleeping.
type scheduledTask struct {
	due time.Time
	seq int
	run func()
}

// scheduler holds pending deferred commits ordered by due time, then by
// enqueue order for equal due times.
type scheduler struct {
	tasks []scheduledTask
	seq   int
}

func newScheduler() *scheduler {
	return &scheduler{}
}

// after schedules fn to run d after now.
func (s *scheduler) after(now time.Time, d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{due: now.Add(d), seq: s.seq, run: fn})
}

// runDue executes every task whose due time is at or before now, in due
// order, and returns how many ran. Tasks scheduled by a running task are
// picked up in the same pass if already due.
func (s *scheduler) runDue(now time.Time) int {
	ran := 0
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.due.After(now) {
				continue
			}
			if idx == -1 || t.due.Before(s.tasks[idx].due) ||
				(t.due.Equal(s.tasks[idx].due) && t.seq < s.tasks[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			return ran
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		task.run()
		ran++
	}
}

// pending returns how many tasks are waiting.
func (s *scheduler) pending() int {
	return len(s.tasks)
}

// nextDue returns the earliest due time, or zero time when empty.
func (s *scheduler) nextDue() time.Time {
	if len(s.tasks) == 0 {
		return time.Time{}
	}
	times := make([]time.Time, len(s.tasks))
	for i, t := range s.tasks {
		times[i] = t.due
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times[0]
}
