package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cosim/harness"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered test programs and their cycle bounds.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMIN\tMAX\tTIMEOUT\tPATH")

		for _, name := range harness.ProgramNames() {
			p, _ := harness.LookupProgram(name)
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
				p.Name, p.MinCycles, p.MaxCycles, p.TimeoutCycles, p.Path())
		}

		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
