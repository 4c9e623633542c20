package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "embedctl",
		Short: "CLI client for the embedding service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://127.0.0.1:8000", "Embedding service base URL")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Report service health and model readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	embedCmd := &cobra.Command{
		Use:   "embed <text>",
		Short: "Embed a single text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(embedCmd)

	batchCmd := &cobra.Command{
		Use:   "batch <text>...",
		Short: "Embed several texts in one request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(apiFlag, args, os.Stdout)
		},
	}
	rootCmd.AddCommand(batchCmd)

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show loaded model metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(infoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
