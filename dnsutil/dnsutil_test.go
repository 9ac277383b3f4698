package dnsutil

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestResolveNumericLiteral verifies that IPv4 literals pass through without
// any lookup.
func TestResolveNumericLiteral(t *testing.T) {
	r := NewResolver()

	ip, err := r.Resolve("127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, net.IPv4(127, 0, 0, 1).To4(), ip)
	assert.Len(t, ip, net.IPv4len)
}

// TestResolveRejectsIPv6Literal verifies that an IPv6 literal is refused,
// since the engine only speaks ICMPv4.
func TestResolveRejectsIPv6Literal(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("::1")
	assert.Error(t, err)
}

// TestNewResolverOptions verifies that the options are applied.
func TestNewResolverOptions(t *testing.T) {
	r := NewResolver(NameserverOption("192.0.2.53:53"), TimeoutOption(time.Second))

	assert.Equal(t, "192.0.2.53:53", r.nameserver)
	assert.Equal(t, time.Second, r.client.Timeout)
}

// TestReverseLookupUnparseable verifies that a hopeless reverse lookup
// degrades to an empty name instead of failing.
func TestReverseLookupUnparseable(t *testing.T) {
	r := NewResolver(NameserverOption("192.0.2.53:53"))

	assert.Equal(t, "", r.ReverseLookup(nil))
}
