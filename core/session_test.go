package core

import (
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSettings() *Settings {
	settings := DefaultSettings()
	settings.Timeout = 250 * time.Millisecond
	settings.ReadTimeout = 5 * time.Millisecond
	settings.PayloadSize = 16
	return settings
}

func localhost() net.IP {
	return net.IPv4(127, 0, 0, 1).To4()
}

// TestNewSession verifies that the variables are correctly initialized.
func TestNewSession(t *testing.T) {
	s, err := NewSession(localhost(), 2, testSettings())
	assert.NoError(t, err)
	assert.NotNil(t, s)

	assert.Equal(t, uint16(os.Getpid()&0xffff), s.id)
	assert.Equal(t, uint16(2), s.seq)
	assert.Equal(t, localhost(), s.target)
}

// TestNewSessionRejectsBadTarget verifies that unresolved and non-IPv4
// addresses are refused.
func TestNewSessionRejectsBadTarget(t *testing.T) {
	_, err := NewSession(nil, 0, testSettings())
	assert.ErrorIs(t, err, ErrAddressResolutionFailed)

	_, err = NewSession(net.ParseIP("::1"), 0, testSettings())
	assert.ErrorIs(t, err, ErrAddressResolutionFailed)
}

// TestNewSessionRejectsBadSettings verifies that settings are validated.
func TestNewSessionRejectsBadSettings(t *testing.T) {
	settings := testSettings()
	settings.TTL = 0

	_, err := NewSession(localhost(), 0, settings)
	assert.Error(t, err)
}

// TestSessionRunMatched verifies the happy path: a reply with our identifier
// and payload arriving after a short delay produces Matched with a
// round-trip time close to that delay.
func TestSessionRunMatched(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 0, settings)
	assert.NoError(t, err)

	transport := &mockTransport{
		frames: []scriptedFrame{
			{delay: 5 * time.Millisecond, data: replyFrame(s.id, 0, DefaultPayload(settings.PayloadSize))},
		},
	}

	outcome := s.Run(transport)

	assert.Equal(t, Matched, outcome.Result)
	assert.NoError(t, outcome.Err)
	assert.GreaterOrEqual(t, outcome.RTT, 5*time.Millisecond)
	// generous bound to absorb scheduling jitter
	assert.Less(t, outcome.RTT, 55*time.Millisecond)

	assert.Len(t, transport.sent, 1)
	assert.Equal(t, settings.TTL, transport.ttl)
	assert.Equal(t, settings.ReadTimeout, transport.readTimeout)
}

// TestSessionRunTimedOut verifies that a transport which never delivers
// anything produces TimedOut at the deadline, not before and not never.
func TestSessionRunTimedOut(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 1, settings)
	assert.NoError(t, err)

	transport := &mockTransport{}

	start := time.Now()
	outcome := s.Run(transport)
	elapsed := time.Since(start)

	assert.Equal(t, TimedOut, outcome.Result)
	assert.Equal(t, 1, outcome.Seq)
	assert.GreaterOrEqual(t, elapsed, settings.Timeout)
}

// TestSessionRunUnrelatedThenMatched verifies the key correctness point:
// a frame carrying a foreign identifier is skipped and the session still
// matches a later frame of its own.
func TestSessionRunUnrelatedThenMatched(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 0, settings)
	assert.NoError(t, err)

	foreign := s.id + 1
	transport := &mockTransport{
		frames: []scriptedFrame{
			{data: replyFrame(foreign, 0, DefaultPayload(settings.PayloadSize))},
			{delay: 10 * time.Millisecond, data: replyFrame(s.id, 0, DefaultPayload(settings.PayloadSize))},
		},
	}

	outcome := s.Run(transport)

	assert.Equal(t, Matched, outcome.Result)
	assert.GreaterOrEqual(t, outcome.RTT, 10*time.Millisecond)
	assert.Equal(t, 2, transport.next, "both frames should have been consumed")
}

// TestSessionRunForeignPayloadIgnored verifies that a reply echoing someone
// else's payload never matches, so the attempt times out.
func TestSessionRunForeignPayloadIgnored(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 0, settings)
	assert.NoError(t, err)

	wrong := DefaultPayload(settings.PayloadSize)
	wrong[0] ^= 0xff
	transport := &mockTransport{
		frames: []scriptedFrame{
			{data: replyFrame(s.id, 0, wrong)},
		},
	}

	outcome := s.Run(transport)
	assert.Equal(t, TimedOut, outcome.Result)
}

// TestSessionRunShortFrameIgnored verifies that a frame too short to hold a
// reply is discarded without aborting the wait.
func TestSessionRunShortFrameIgnored(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 0, settings)
	assert.NoError(t, err)

	transport := &mockTransport{
		frames: []scriptedFrame{
			{data: make([]byte, 10)},
			{data: replyFrame(s.id, 0, DefaultPayload(settings.PayloadSize))},
		},
	}

	outcome := s.Run(transport)
	assert.Equal(t, Matched, outcome.Result)
}

// TestSessionRunSendFailed verifies that a failing transmit aborts the
// attempt with the send error, without entering the receive loop.
func TestSessionRunSendFailed(t *testing.T) {
	settings := testSettings()
	s, err := NewSession(localhost(), 0, settings)
	assert.NoError(t, err)

	transport := &mockTransport{sendErr: ErrSendFailed}

	start := time.Now()
	outcome := s.Run(transport)

	assert.Equal(t, Failed, outcome.Result)
	assert.True(t, errors.Is(outcome.Err, ErrSendFailed))
	assert.Less(t, time.Since(start), settings.Timeout)
}
