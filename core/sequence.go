package core

import (
	"errors"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
)

// openTransport creates the raw transport for one attempt. It is a variable
// so tests can substitute a scripted transport.
var openTransport = func(target net.IP) (Transport, error) {
	return OpenTransport(target)
}

// Sequence runs a fixed number of independent ping attempts against one
// target, each with its own transport and deadline. One attempt failing or
// timing out never aborts the remaining ones; only a permission error on the
// raw socket ends the run early, since no later attempt could fare better.
type Sequence struct {
	// settings holds the knobs shared by every attempt.
	settings *Settings

	// target is the resolved numeric address of the host being pinged.
	target net.IP

	// logger is an instance of logrus used to log activities related to this run
	logger *log.Logger

	// stopReqs carries a request to end the run after the attempt in flight.
	stopReqs chan struct{}

	// handlers are the callback functions called after each attempt
	// concludes, with its outcome.
	handlers []func(Outcome)
}

// NewSequence creates a sequence of ping attempts against an already-resolved
// IPv4 target.
func NewSequence(target net.IP, settings *Settings) (*Sequence, error) {
	logger := NewLogger(settings.LoggingLevel)

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if target == nil || target.To4() == nil {
		return nil, fmt.Errorf("%w: %v is not an IPv4 address", ErrAddressResolutionFailed, target)
	}

	return &Sequence{
		settings: settings,
		target:   target,
		logger:   logger,
		stopReqs: make(chan struct{}, 1),
	}, nil
}

// AddHandler adds a handler function that will be called after each attempt
// concludes.
func (q *Sequence) AddHandler(handler func(Outcome)) {
	q.handlers = append(q.handlers, handler)
}

// RequestStop makes the run finish after the attempt currently in flight.
// Attempts themselves are never interrupted; their own deadline bounds them.
func (q *Sequence) RequestStop() {
	select {
	case q.stopReqs <- struct{}{}:
	default:
	}
}

// Run executes the attempts one after another and returns the per-attempt
// outcomes in order.
func (q *Sequence) Run() []Outcome {
	outcomes := make([]Outcome, 0, q.settings.Count)

	for i := 0; i < q.settings.Count; i++ {
		select {
		case <-q.stopReqs:
			q.logger.Info("Stop requested, ending run")
			return outcomes
		default:
		}

		outcome := q.runAttempt(uint16(i))
		outcomes = append(outcomes, outcome)

		for _, handler := range q.handlers {
			handler(outcome)
		}

		if outcome.Result == Failed && errors.Is(outcome.Err, ErrPermissionDenied) {
			q.logger.Error("Raw socket not permitted, aborting remaining attempts")
			break
		}
	}

	return outcomes
}

// runAttempt opens a fresh transport for one session and guarantees its
// release on every exit path.
func (q *Sequence) runAttempt(seq uint16) Outcome {
	session, err := NewSession(q.target, seq, q.settings)
	if err != nil {
		return Outcome{Result: Failed, Err: err, Seq: int(seq)}
	}

	transport, err := openTransport(q.target)
	if err != nil {
		q.logger.Errorf("Attempt %d to %s could not open transport: %s", seq, q.target, err)
		return Outcome{Result: Failed, Err: err, Seq: int(seq)}
	}
	defer transport.Close()

	return session.Run(transport)
}

// RunSequence pings target according to settings and returns the per-attempt
// outcomes. It is the convenience entry point for callers that need no
// per-attempt callbacks or stop control.
func RunSequence(target net.IP, settings *Settings) ([]Outcome, error) {
	sequence, err := NewSequence(target, settings)
	if err != nil {
		return nil, err
	}
	return sequence.Run(), nil
}
