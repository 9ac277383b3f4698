// Package dnsutil resolves target names to addresses and addresses back to
// names. The ping engine only consumes already-resolved addresses; this
// package is the collaborator the CLI uses to produce them.
package dnsutil

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const defaultTimeout = 2 * time.Second

// Resolver performs forward and reverse lookups. By default it uses the
// system resolver; with NameserverOption it queries a specific server
// directly instead.
type Resolver struct {
	nameserver string
	client     *dns.Client
}

type Option func(*Resolver)

// NameserverOption directs all queries at the given host:port instead of the
// system resolver.
func NameserverOption(addr string) Option {
	return func(r *Resolver) {
		r.nameserver = addr
	}
}

// TimeoutOption bounds a single direct query.
func TimeoutOption(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.client.Timeout = timeout
	}
}

// NewResolver creates a resolver with the given options applied.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client: &dns.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first IPv4 address of host. Numeric IPv4 literals pass
// through without a lookup.
func (r *Resolver) Resolve(host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return nil, fmt.Errorf("%s is not an IPv4 address", host)
		}
		return ip.To4(), nil
	}

	if r.nameserver != "" {
		return r.resolveDirect(host)
	}

	addrs, err := net.LookupIP(host)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", host, err)
	}
	for _, addr := range addrs {
		if ip4 := addr.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("no IPv4 address found for %s", host)
}

// resolveDirect queries the configured nameserver for an A record.
func (r *Resolver) resolveDirect(host string) (net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	m.RecursionDesired = true

	in, _, err := r.client.Exchange(m, r.nameserver)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s via %s: %w", host, r.nameserver, err)
	}

	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.To4(), nil
		}
	}
	return nil, fmt.Errorf("no A record for %s", host)
}

// ReverseLookup returns a registered name for ip, or "" when there is none.
// A missing reverse name is cosmetic, never a reason to abort a run.
func (r *Resolver) ReverseLookup(ip net.IP) string {
	if r.nameserver != "" {
		return r.reverseDirect(ip)
	}

	names, err := net.LookupAddr(ip.String())
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

// reverseDirect queries the configured nameserver for a PTR record.
func (r *Resolver) reverseDirect(ip net.IP) string {
	arpa, err := dns.ReverseAddr(ip.String())
	if err != nil {
		return ""
	}

	m := new(dns.Msg)
	m.SetQuestion(arpa, dns.TypePTR)
	m.RecursionDesired = true

	in, _, err := r.client.Exchange(m, r.nameserver)
	if err != nil {
		return ""
	}

	for _, rr := range in.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, ".")
		}
	}
	return ""
}
