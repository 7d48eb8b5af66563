package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cosim/image"
)

var ini2hexCmd = &cobra.Command{
	Use:   "ini2hex <input.ini> <output.hex>",
	Short: "Convert a program image to $readmemh format.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readImage(args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return writeFile(args[1], func(w io.Writer) error {
			n, err := image.WriteReadmemh(w, data)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Converted %d bytes (%d words) to %s\n", len(data), n, args[1])
			}

			return err
		})
	},
}

var padCmd = &cobra.Command{
	Use:   "pad <input.ini> <output.ini>",
	Short: "Pad a program image with zero bytes.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetUint("addr-width")

		data, err := readImage(args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		padded := image.Pad(data, width)

		return writeFile(args[1], func(w io.Writer) error {
			err := image.Write(w, padded)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Padded %d bytes to %d bytes in %s\n",
					len(data), len(padded), args[1])
			}

			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(ini2hexCmd)
	rootCmd.AddCommand(padCmd)

	padCmd.Flags().Uint("addr-width", 12,
		"Pad to 2^addr-width bytes.")
}

func readImage(path string, diag io.Writer) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()

	return image.ReadAll(f, func(d image.Diagnostic) {
		fmt.Fprintf(diag, "WARNING: %s\n", d)
	})
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
