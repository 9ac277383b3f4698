package core

import (
	"math"
	"time"
)

// Stats aggregates the outcomes of a full ping run for reporting.
type Stats struct {
	// Sent is the number of attempts that were run.
	Sent int

	// Received is the number of attempts that got a verified reply in time.
	Received int

	// TimedOut is the number of attempts whose deadline passed unanswered.
	TimedOut int

	// Errors is the number of attempts aborted by a transport or resolution
	// failure.
	Errors int

	// RTTMin, RTTAvg and RTTMax describe the round-trip times of the
	// received replies. All zero when nothing was received.
	RTTMin time.Duration
	RTTAvg time.Duration
	RTTMax time.Duration
}

// Summarize folds per-attempt outcomes into the aggregate shown at the end
// of a run.
func Summarize(outcomes []Outcome) Stats {
	var stats Stats
	var sum time.Duration
	shortest := time.Duration(math.MaxInt64)

	for _, outcome := range outcomes {
		stats.Sent++

		switch outcome.Result {
		case Matched:
			stats.Received++
			sum += outcome.RTT
			if outcome.RTT > stats.RTTMax {
				stats.RTTMax = outcome.RTT
			}
			if outcome.RTT < shortest {
				shortest = outcome.RTT
			}
		case TimedOut:
			stats.TimedOut++
		case Failed:
			stats.Errors++
		}
	}

	if stats.Received > 0 {
		stats.RTTMin = shortest
		stats.RTTAvg = sum / time.Duration(stats.Received)
	}

	return stats
}

// PacketLoss returns the fraction of attempts that got no verified reply.
func (s Stats) PacketLoss() float64 {
	if s.Sent == 0 {
		return 0
	}
	return 1 - float64(s.Received)/float64(s.Sent)
}

// AnyFailed reports whether any attempt missed a timely verified reply,
// which is what the process exit status reflects.
func (s Stats) AnyFailed() bool {
	return s.TimedOut > 0 || s.Errors > 0
}
