package core

// Checksum computes the RFC 1071 Internet checksum of b: the buffer is
// summed as big-endian 16-bit words (a trailing odd byte is zero-padded),
// carries are folded back into the low 16 bits and the one's complement of
// the result is returned.
//
// Callers framing a packet must zero the checksum field before calling this
// and write the result back afterwards. Summing a buffer that already
// carries its own valid checksum yields 0.
func Checksum(b []byte) uint16 {
	var sum uint32

	for len(b) > 1 {
		sum += uint32(b[0])<<8 | uint32(b[1])
		b = b[2:]
	}
	if len(b) == 1 {
		sum += uint32(b[0]) << 8
	}

	for sum>>16 != 0 {
		sum = sum>>16 + sum&0xffff
	}

	return ^uint16(sum)
}
