package core

import (
	"fmt"
	"net"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
)

// Session runs one ping attempt against a resolved target address: build the
// request, send it, then receive until a verified reply arrives or the
// deadline passes. A session owns no cross-attempt state and performs no
// retries; retrying is the caller's job, run as independent sessions.
type Session struct {
	// settings holds the knobs of the run this attempt belongs to.
	settings *Settings

	// target is the resolved numeric address of the host being pinged.
	target net.IP

	// id distinguishes this process' echo requests from those of other ping
	// processes on the same host. Derived from the process id.
	id uint16

	// seq is the sequence number stamped on the outgoing request.
	seq uint16

	// sent is the request packet, kept so replies can be verified against
	// the exact payload bytes that went out.
	sent *EchoPacket

	// logger is an instance of logrus used to log activities related to this session
	logger *log.Logger
}

// NewSession creates a session for a single ping attempt. The target must be
// an already-resolved IPv4 address; name resolution is a collaborator
// concern, not the engine's.
func NewSession(target net.IP, seq uint16, settings *Settings) (*Session, error) {
	logger := NewLogger(settings.LoggingLevel)

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if target == nil || target.To4() == nil {
		return nil, fmt.Errorf("%w: %v is not an IPv4 address", ErrAddressResolutionFailed, target)
	}

	session := &Session{
		settings: settings,
		target:   target,
		id:       uint16(os.Getpid() & 0xffff),
		seq:      seq,
		logger:   logger,
	}

	logger.Debugf("Created session with id %d, seq %d, target %s", session.id, session.seq, session.target)

	return session, nil
}

// Run executes the attempt on the given transport and reports its outcome:
// Matched with the measured round-trip time, TimedOut, or Failed. The
// transport is configured but not closed here; the caller that opened it
// releases it.
func (s *Session) Run(transport Transport) Outcome {
	s.sent = BuildEchoRequest(s.id, s.seq, DefaultPayload(s.settings.PayloadSize))

	if err := transport.SetTTL(s.settings.TTL); err != nil {
		return s.fail(err)
	}
	if err := transport.SetReceiveTimeout(s.settings.ReadTimeout); err != nil {
		return s.fail(err)
	}

	s.logger.Debugf("Sending %d-byte echo request id=%d seq=%d to %s",
		s.sent.Len(), s.id, s.seq, s.target)
	s.logger.Tracef("Request bytes: %s", hexDump(s.sent.Marshal()))

	// The start timestamp is taken immediately before the send so the
	// measurement covers the full round trip.
	start := time.Now()
	deadline := start.Add(s.settings.Timeout)

	if err := transport.Send(s.sent); err != nil {
		return s.fail(err)
	}

	for {
		frame, err := transport.Receive(maxFrameLength)
		if err != nil {
			return s.fail(err)
		}

		now := time.Now()

		if len(frame) > 0 {
			if reply, ok := s.match(frame); ok {
				rtt := now.Sub(start)
				s.logger.Debugf("Verified echo reply id=%d seq=%d after %s",
					reply.Identifier, reply.Sequence, rtt)
				return Outcome{Result: Matched, RTT: rtt, Seq: int(s.seq)}
			}
		}

		// An empty frame means the per-call receive timeout elapsed; either
		// way the attempt's own deadline decides whether to keep waiting.
		if !now.Before(deadline) {
			s.logger.Debugf("No verified reply from %s within %s", s.target, s.settings.Timeout)
			return Outcome{Result: TimedOut, Seq: int(s.seq)}
		}
	}
}

// match decodes a raw frame and verifies it against this session's request.
// Frames that are too short or belong to someone else are logged and
// discarded so the wait can continue.
func (s *Session) match(frame []byte) (*EchoPacket, bool) {
	// Raw sockets hand us the IPv4 header too; take its actual length from
	// the IHL field when the header parses, otherwise assume the minimum.
	ipHeaderLen := MinIPHeaderLength
	if header, err := ipv4.ParseHeader(frame); err == nil && header.Len >= MinIPHeaderLength {
		ipHeaderLen = header.Len
	}

	reply, err := DecodeReply(frame, ipHeaderLen, len(s.sent.Payload))
	if err != nil {
		s.logger.Debugf("Discarding %d-byte frame: %s", len(frame), err)
		return nil, false
	}

	if !VerifyReply(s.sent, reply, s.id) {
		s.logger.Warnf("Unrelated message received: %d bytes with id %d", len(frame), reply.Identifier)
		s.logger.Tracef("Unrelated frame bytes: %s", hexDump(frame))
		return nil, false
	}

	return reply, true
}

// fail wraps a transport error into a terminal outcome.
func (s *Session) fail(err error) Outcome {
	s.logger.Errorf("Attempt %d to %s failed: %s", s.seq, s.target, err)
	return Outcome{Result: Failed, Err: err, Seq: int(s.seq)}
}
