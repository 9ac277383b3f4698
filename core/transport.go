package core

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// maxFrameLength bounds a single read from the socket. An IPv4 header plus a
// full echo reply fits with plenty of slack for IP options.
const maxFrameLength = 1024

// Transport owns the socket used to exchange ICMP messages with one target.
// It is exclusively owned by a single session and released when the attempt
// concludes.
type Transport interface {
	// SetTTL configures the IP time-to-live of outgoing packets.
	SetTTL(ttl int) error

	// SetReceiveTimeout bounds the blocking time of a single Receive call.
	SetReceiveTimeout(d time.Duration) error

	// Send transmits one echo request to the target.
	Send(p *EchoPacket) error

	// Receive blocks for at most the configured receive timeout and returns
	// up to maxBytes of one raw frame. An empty result means nothing arrived
	// in time; that is not an error, the caller re-checks its own deadline.
	Receive(maxBytes int) ([]byte, error)

	// Close releases the socket. It is idempotent.
	Close() error
}

// RawTransport is a raw ICMP socket bound for a single IPv4 target.
type RawTransport struct {
	fd     int
	peer   unix.SockaddrInet4
	closed bool
}

// OpenTransport creates a raw ICMP socket for target. It fails with
// ErrPermissionDenied when the OS rejects the socket creation and with
// ErrAddressResolutionFailed when target is not a usable IPv4 address.
func OpenTransport(target net.IP) (*RawTransport, error) {
	ip4 := target.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: %s is not an IPv4 address", ErrAddressResolutionFailed, target)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		if err == unix.EPERM || err == unix.EACCES {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("could not create raw ICMP socket: %w", err)
	}

	t := &RawTransport{fd: fd}
	copy(t.peer.Addr[:], ip4)
	return t, nil
}

// SetTTL configures the IP time-to-live of outgoing packets.
func (t *RawTransport) SetTTL(ttl int) error {
	if err := unix.SetsockoptInt(t.fd, unix.IPPROTO_IP, unix.IP_TTL, ttl); err != nil {
		return fmt.Errorf("could not set TTL to %d: %w", ttl, err)
	}
	return nil
}

// SetReceiveTimeout bounds the blocking time of a single Receive call. The
// duration is decomposed into seconds and microseconds for the socket option.
func (t *RawTransport) SetReceiveTimeout(d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(t.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return fmt.Errorf("could not set receive timeout to %s: %w", d, err)
	}
	return nil
}

// Send transmits one echo request to the target.
func (t *RawTransport) Send(p *EchoPacket) error {
	if err := unix.Sendto(t.fd, p.Marshal(), 0, &t.peer); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Receive reads one raw frame of up to maxBytes. When the configured receive
// timeout elapses first, or the call is interrupted, it returns an empty
// frame and no error.
func (t *RawTransport) Receive(maxBytes int) ([]byte, error) {
	buffer := make([]byte, maxBytes)
	n, _, err := unix.Recvfrom(t.fd, buffer, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read from raw socket: %w", err)
	}
	return buffer[:n], nil
}

// Close releases the socket. Calling it more than once is harmless, so a
// deferred Close is always safe.
func (t *RawTransport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return unix.Close(t.fd)
}
