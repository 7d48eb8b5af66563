// Package cmd provides the command-line interface of cosimctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cosimctl",
	Short: "Cosimctl runs test programs against a cycle-accurate core.",
	Long: `Cosimctl runs test programs against a cycle-accurate core ` +
		`connected to a timing memory model. It also converts program ` +
		`images into the formats used by HDL simulators.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		envFile, _ := cmd.Flags().GetString("env")
		return loadEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().String("env", ".env",
		"File that sets environment variables such as WORKSPACE.")
}

// loadEnv reads the env file if it exists. Variables that are already set
// are kept.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers run before the process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
