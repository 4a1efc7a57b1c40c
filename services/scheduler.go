// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStatsScheduler periodically refreshes the denormalized per-user win
// and played counters. The counters are read-only hints for list views; a
// stale interval's worth of drift is acceptable, so there is no recompute
// on the write path.
func (s *MatchService) StartStatsScheduler(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.RecomputeStats(); err != nil {
				return
			}
			log.Printf("[STATS] user counters refreshed")
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
