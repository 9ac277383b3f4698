package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pingrtt/pingrtt/netutil"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "list the host's non-loopback network interfaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := netutil.PhysicalInterfaceNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
