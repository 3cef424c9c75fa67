package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/AndrewLester/timewarp/internal/config"
	"github.com/AndrewLester/timewarp/internal/ui"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	exitCode := 0

	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "timewarp",
		Short: "Shift the system clock forward or backward for testing",
		Long: `timewarp temporarily moves the system clock by a chosen interval, or
resets it to network time, through an interactive menu. Use it to test
license expiry, scheduled jobs and cache TTLs without waiting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := hclog.LevelFromString(logLevel)
			if level == hclog.NoLevel {
				return fmt.Errorf("invalid log level %q", logLevel)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "timewarp",
				Level:  level,
				Output: os.Stderr,
			})

			exitCode = handleWarp(newApp(cfg, logger))
			return nil
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to an optional YAML config file.")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "off", "Diagnostic log level (trace, debug, info, warn, error, off).")
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("error: %v", err)))
		return 1
	}
	return exitCode
}
