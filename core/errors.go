package core

import "errors"

var (
	// ErrPermissionDenied means the OS rejected the raw socket creation.
	// Raw ICMP sockets require elevated privileges.
	ErrPermissionDenied = errors.New("raw socket requires elevated privileges")

	// ErrAddressResolutionFailed means the target could not be turned into
	// a socket address.
	ErrAddressResolutionFailed = errors.New("could not resolve target address")

	// ErrSendFailed means the transmit call reported failure.
	ErrSendFailed = errors.New("echo request could not be sent")

	// ErrTooShort means a received frame cannot contain a full echo reply.
	ErrTooShort = errors.New("frame too short for an echo reply")
)
