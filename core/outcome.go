package core

import "time"

// Result classifies the terminal state of one ping attempt.
type Result int

const (
	// Matched is the result of an attempt whose echo request got a verified
	// reply before the deadline.
	Matched Result = iota
	// TimedOut is the result of an attempt whose deadline passed without a
	// verified reply. It is an expected outcome, not an error.
	TimedOut
	// Failed is the result of an attempt aborted by a transport or
	// resolution error.
	Failed
)

func (r Result) String() string {
	switch r {
	case Matched:
		return "matched"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the terminal report of one ping attempt.
type Outcome struct {
	// Result classifies how the attempt ended.
	Result Result

	// RTT is the measured round-trip time, valid only when Result is Matched.
	RTT time.Duration

	// Err carries the failure reason, set only when Result is Failed.
	Err error

	// Seq is the attempt's index within the run, also stamped on the echo
	// request as its sequence number.
	Seq int
}
