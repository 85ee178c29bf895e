package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/textileio/go-ethmiddleware/buildinfo"
	"github.com/textileio/go-ethmiddleware/pkg/chains"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "Lists the known chains",
	Long:  `Lists the known chains and whether they only accept legacy transactions`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tLEGACY")
		for _, c := range chains.Default.List() {
			fmt.Fprintf(w, "%d\t%s\t%t\n", c.ID, c.Name, c.Legacy)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints build information",
	Long:  `Prints build information`,
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildinfo.GetSummary())
	},
}
