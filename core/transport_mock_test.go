package core

import (
	"time"
)

// scriptedFrame is one frame a mock transport will hand back, after waiting
// the given delay.
type scriptedFrame struct {
	delay time.Duration
	data  []byte
}

// mockTransport replays a script of frames to the session under test. Once
// the script runs out every Receive simulates an expired receive timeout.
type mockTransport struct {
	frames []scriptedFrame
	next   int

	sent        []*EchoPacket
	sendErr     error
	ttl         int
	readTimeout time.Duration
	closed      bool
}

func (m *mockTransport) SetTTL(ttl int) error {
	m.ttl = ttl
	return nil
}

func (m *mockTransport) SetReceiveTimeout(d time.Duration) error {
	m.readTimeout = d
	return nil
}

func (m *mockTransport) Send(p *EchoPacket) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, p)
	return nil
}

func (m *mockTransport) Receive(maxBytes int) ([]byte, error) {
	if m.next >= len(m.frames) {
		time.Sleep(m.readTimeout)
		return nil, nil
	}
	frame := m.frames[m.next]
	m.next++
	time.Sleep(frame.delay)
	return frame.data, nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

// replyFrame builds a raw frame as a raw socket would deliver it: a minimal
// IPv4 header followed by an encoded echo reply.
func replyFrame(id, seq uint16, payload []byte) []byte {
	reply := &EchoPacket{
		Type:       TypeEchoReply,
		Identifier: id,
		Sequence:   seq,
		Payload:    append([]byte(nil), payload...),
	}
	reply.Checksum = Checksum(reply.Marshal())

	header := make([]byte, MinIPHeaderLength)
	header[0] = 0x45 // version 4, IHL 5
	return append(header, reply.Marshal()...)
}
