package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/cosim/mem/store"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <image>",
	Short: "Load a program image and print a range of memory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, _ := cmd.Flags().GetUint32("capacity")
		start, _ := cmd.Flags().GetUint32("start")
		end, _ := cmd.Flags().GetUint32("end")

		s, err := store.New(capacity)
		if err != nil {
			return err
		}

		s.SetLogger(nil)

		if err := s.LoadHexFile(args[0]); err != nil {
			return err
		}

		return s.Dump(cmd.OutOrStdout(), start, end)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().Uint32("capacity", 1<<20, "Memory capacity in bytes.")
	dumpCmd.Flags().Uint32("start", 0, "First address to print.")
	dumpCmd.Flags().Uint32("end", 256, "Address after the last one to print.")
}
