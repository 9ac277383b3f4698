package cmd

import (
	"fmt"
	"net"
	"time"

	"github.com/pingrtt/pingrtt/core"
)

func printBanner(host string, target net.IP, reverseName string, settings *core.Settings) {
	if reverseName == "" {
		reverseName = host
	}
	fmt.Printf("PING %s (%s) %d bytes of data\n",
		reverseName, target, core.HeaderLength+settings.PayloadSize)
}

func printOutcome(target net.IP, outcome core.Outcome, settings *core.Settings) {
	switch outcome.Result {
	case core.Matched:
		fmt.Printf("%d bytes from %s: icmp_seq=%d time=%s\n",
			core.HeaderLength+settings.PayloadSize, target, outcome.Seq,
			outcome.RTT.Truncate(time.Microsecond))
	case core.TimedOut:
		fmt.Printf("no reply from %s: icmp_seq=%d timeout after %s\n",
			target, outcome.Seq, settings.Timeout)
	case core.Failed:
		fmt.Printf("attempt %d to %s failed: %s\n", outcome.Seq, target, outcome.Err)
	}
}

func printStats(host string, stats core.Stats) {
	fmt.Printf("\n--- %s ping statistics ---\n", host)
	fmt.Printf("%d packets transmitted, %d received, %.0f%% packet loss\n",
		stats.Sent, stats.Received, stats.PacketLoss()*100)

	if stats.Received > 0 {
		fmt.Printf("rtt min/avg/max = %.3f/%.3f/%.3f ms\n",
			millis(stats.RTTMin), millis(stats.RTTAvg), millis(stats.RTTMax))
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
