package main

import (
	"fmt"
	"os"

	"github.com/crucial707/league-api/cmd/cli/auth"
	"github.com/crucial707/league-api/cmd/cli/matches"
	"github.com/crucial707/league-api/cmd/cli/players"
	"github.com/crucial707/league-api/cmd/cli/root"
	"github.com/crucial707/league-api/cmd/cli/stats"
	"github.com/crucial707/league-api/cmd/cli/teams"
	"github.com/crucial707/league-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	teams.InitTeams(rootCmd)
	players.InitPlayers(rootCmd)
	matches.InitMatches(rootCmd)
	stats.InitStats(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
