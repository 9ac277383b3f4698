package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// TypeEchoReply is the ICMP type of an echo reply.
	TypeEchoReply = 0
	// TypeEchoRequest is the ICMP type of an echo request.
	TypeEchoRequest = 8

	echoCode = 0

	// HeaderLength is the size of the ICMP echo header preceding the payload.
	HeaderLength = 8

	// DefaultPayloadLength fills the classic 64-byte echo packet.
	DefaultPayloadLength = 56

	// MinIPHeaderLength is the shortest IPv4 header that can prefix a frame
	// read from a raw socket.
	MinIPHeaderLength = 20
)

// EchoPacket is one ICMP echo message, request or reply.
//
// Field offsets and widths follow the wire layout exactly; multi-byte fields
// are big-endian on both the encode and the decode path, so a reply is always
// compared against the same byte order we framed.
type EchoPacket struct {
	Type       uint8
	Code       uint8
	Checksum   uint16
	Identifier uint16
	Sequence   uint16
	Payload    []byte
}

// Len returns the encoded size of the packet in bytes.
func (p *EchoPacket) Len() int {
	return HeaderLength + len(p.Payload)
}

// Marshal encodes the packet into wire format. The checksum field is written
// as stored; it is the builder's job to have computed it over the encoding
// with the field zeroed.
func (p *EchoPacket) Marshal() []byte {
	b := make([]byte, p.Len())
	b[0] = p.Type
	b[1] = p.Code
	binary.BigEndian.PutUint16(b[2:4], p.Checksum)
	binary.BigEndian.PutUint16(b[4:6], p.Identifier)
	binary.BigEndian.PutUint16(b[6:8], p.Sequence)
	copy(b[HeaderLength:], p.Payload)
	return b
}

// BuildEchoRequest constructs an echo request with the given identity fields
// and a private copy of payload. The checksum is computed last, over the
// encoding with the checksum field still zero; mutating any field afterwards
// invalidates it.
func BuildEchoRequest(identifier, sequence uint16, payload []byte) *EchoPacket {
	p := &EchoPacket{
		Type:       TypeEchoRequest,
		Code:       echoCode,
		Identifier: identifier,
		Sequence:   sequence,
		Payload:    append([]byte(nil), payload...),
	}
	p.Checksum = Checksum(p.Marshal())
	return p
}

// DefaultPayload returns n bytes of the repeating printable pattern
// '0', '1', '2', ... that the requests carry by default. A recognizable
// payload makes captures easier to read and strengthens reply verification.
func DefaultPayload(n int) []byte {
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte('0' + i%75)
	}
	return payload
}

// DecodeReply interprets the trailing bytes of a raw frame as an echo packet,
// skipping ipHeaderLen bytes of IPv4 header. It fails with ErrTooShort when
// the frame cannot contain a header plus payloadLen bytes of payload; it
// never reads past the frame.
//
// No validation beyond length is performed here. Identity checks are the
// job of VerifyReply.
func DecodeReply(frame []byte, ipHeaderLen, payloadLen int) (*EchoPacket, error) {
	need := ipHeaderLen + HeaderLength + payloadLen
	if len(frame) < need {
		return nil, fmt.Errorf("%w: received %d bytes, need %d", ErrTooShort, len(frame), need)
	}

	b := frame[ipHeaderLen:need]
	return &EchoPacket{
		Type:       b[0],
		Code:       b[1],
		Checksum:   binary.BigEndian.Uint16(b[2:4]),
		Identifier: binary.BigEndian.Uint16(b[4:6]),
		Sequence:   binary.BigEndian.Uint16(b[6:8]),
		Payload:    append([]byte(nil), b[HeaderLength:]...),
	}, nil
}

// VerifyReply reports whether received is the reply to sent: it must be an
// echo reply with code 0, carry expectedID and echo the sent payload byte for
// byte. A mismatch means "not our reply", never an error; unrelated ICMP
// traffic on the same host is expected.
//
// The reply's own checksum is not re-verified, matching the reference
// behavior of trusting the kernel to deliver intact data.
func VerifyReply(sent, received *EchoPacket, expectedID uint16) bool {
	if received.Type != TypeEchoReply || received.Code != echoCode {
		return false
	}
	if received.Identifier != expectedID {
		return false
	}
	return bytes.Equal(received.Payload, sent.Payload)
}
