package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level "league" command.
var RootCmd = &cobra.Command{
	Use:           "league",
	Short:         "Sports league CLI",
	Long:          "Command line interface for the sports league API (teams, players, matches, statistics).",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
