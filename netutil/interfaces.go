// Package netutil enumerates the host's network interfaces.
package netutil

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// PhysicalInterfaceNames returns the names of the host's non-loopback
// network links, in kernel order.
func PhysicalInterfaceNames() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("could not list network links: %w", err)
	}

	var names []string
	for _, link := range links {
		attrs := link.Attrs()
		if attrs.Flags&net.FlagLoopback != 0 {
			continue
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}
