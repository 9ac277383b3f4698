package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pingrtt/pingrtt/core"
)

var (
	settings   = core.DefaultSettings()
	verbose    bool
	nameserver string
)

var rootCmd = &cobra.Command{
	Use:   "pingrtt <host>",
	Short: "pingrtt measures ICMP echo round-trip times",
	Long: "pingrtt sends ICMP echo requests over a raw socket and reports the round-trip\n" +
		"time of each verified reply. Raw sockets require elevated privileges.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPing(args[0])
	},
}

func init() {
	rootCmd.Flags().IntVarP(&settings.Count, "count", "c", settings.Count,
		"number of echo requests to send")
	rootCmd.Flags().IntVarP(&settings.TTL, "ttl", "t", settings.TTL,
		"IP time-to-live of outgoing requests")
	rootCmd.Flags().DurationVarP(&settings.Timeout, "timeout", "W", settings.Timeout,
		"time to wait for each reply")
	rootCmd.Flags().IntVarP(&settings.PayloadSize, "size", "s", settings.PayloadSize,
		"number of payload bytes to send")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log engine activity")
	rootCmd.Flags().StringVar(&nameserver, "nameserver", "",
		"resolve the target via this host:port instead of the system resolver")

	rootCmd.AddCommand(interfacesCmd)
}

// Execute runs the command line interface.
func Execute() error {
	return rootCmd.Execute()
}
