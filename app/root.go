// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pollhive",
	Short: "PollHive is a group-based polling and voting service",
	Long: `PollHive is a group-based polling and voting service.
Users join groups through invite links, groups own polls, and polls
collect votes through share links and targeted invites.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
