package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "palabras",
	Short: "Spanish-English vocabulary drill for Telegram",
	// Running the binary without a subcommand starts the bot.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBot(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, sheetCmd, resetCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
