package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/pingrtt/pingrtt/core"
	"github.com/pingrtt/pingrtt/dnsutil"
)

// exitCode carries the run verdict to main without forcing an os.Exit from
// inside the command.
var exitCode int

// ExitCode returns the exit status derived from the last run: non-zero when
// any attempt failed to get a timely, verified reply.
func ExitCode() int {
	return exitCode
}

// Runner ties one ping run together: it resolves the target, prints progress
// and stops the run on an interrupt signal.
type Runner struct {
	sequence *core.Sequence
	target   net.IP
	sigch    chan os.Signal
	endch    chan []core.Outcome
}

// newRunner creates a runner for an already-resolved target.
func newRunner(target net.IP, settings *core.Settings) (*Runner, error) {
	sequence, err := core.NewSequence(target, settings)
	if err != nil {
		return nil, err
	}

	sequence.AddHandler(func(outcome core.Outcome) {
		printOutcome(target, outcome, settings)
	})

	return &Runner{
		sequence: sequence,
		target:   target,
		sigch:    make(chan os.Signal, 1),
		endch:    make(chan []core.Outcome, 1),
	}, nil
}

// Start starts the run in the background.
func (r *Runner) Start() {
	r.handleSignals()

	go func() {
		r.endch <- r.sequence.Run()
	}()
}

// RequestStop requests the run to end after the attempt in flight.
func (r *Runner) RequestStop() {
	r.sequence.RequestStop()
}

// Wait blocks the caller until the run finishes and returns its outcomes.
func (r *Runner) Wait() []core.Outcome {
	return <-r.endch
}

// handleSignals turns an interrupt into a stop request so the run still
// prints its closing statistics.
func (r *Runner) handleSignals() {
	signal.Notify(r.sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-r.sigch
		r.RequestStop()
	}()
}

// runPing is the root command body: resolve, ping, report, derive the exit
// status.
func runPing(host string) error {
	if verbose {
		settings.LoggingLevel = uint32(log.DebugLevel)
	}

	var opts []dnsutil.Option
	if nameserver != "" {
		opts = append(opts, dnsutil.NameserverOption(nameserver))
	}
	resolver := dnsutil.NewResolver(opts...)

	target, err := resolver.Resolve(host)
	if err != nil {
		return fmt.Errorf("could not resolve %s: %w", host, err)
	}

	printBanner(host, target, resolver.ReverseLookup(target), settings)

	runner, err := newRunner(target, settings)
	if err != nil {
		return err
	}

	runner.Start()
	outcomes := runner.Wait()

	stats := core.Summarize(outcomes)
	printStats(host, stats)

	if stats.AnyFailed() || len(outcomes) == 0 {
		exitCode = 1
	}
	return nil
}
