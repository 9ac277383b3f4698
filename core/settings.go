package core

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Settings contains all configurable properties of a ping run.
type Settings struct {
	// TTL is the IP time-to-live set on outgoing echo requests.
	TTL int

	// Count is the number of echo requests sent before exiting.
	Count int

	// Timeout is the time one attempt waits for a verified reply.
	Timeout time.Duration

	// ReadTimeout bounds a single blocking receive call. Several receive
	// calls may be exercised before Timeout elapses; the attempt's own
	// deadline is re-checked after each one.
	ReadTimeout time.Duration

	// PayloadSize is the number of payload bytes carried by each request.
	PayloadSize int

	// LoggingLevel is the logrus level used by the engine loggers.
	LoggingLevel uint32
}

// DefaultSettings returns the default settings for a ping run, change as you
// wish. The defaults mirror the classic utility: four 64-byte requests with a
// 2.5 second wait each.
func DefaultSettings() *Settings {
	return &Settings{
		TTL:          64,
		Count:        4,
		Timeout:      2500 * time.Millisecond,
		ReadTimeout:  200 * time.Millisecond,
		PayloadSize:  DefaultPayloadLength,
		LoggingLevel: uint32(log.WarnLevel),
	}
}

// validate checks that every knob holds a usable value.
func (s *Settings) validate() error {
	if s.TTL < 1 || s.TTL > 255 {
		return fmt.Errorf("TTL must be between 1 and 255, got %d", s.TTL)
	}
	if s.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", s.Count)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", s.ReadTimeout)
	}
	if s.PayloadSize < 0 {
		return fmt.Errorf("payload size must not be negative, got %d", s.PayloadSize)
	}
	return nil
}
