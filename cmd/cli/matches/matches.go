package matches

import (
	"fmt"
	"time"

	"github.com/crucial707/league-api/cmd/cli/client"
	"github.com/crucial707/league-api/cmd/cli/output"
	"github.com/crucial707/league-api/internal/models"
	"github.com/spf13/cobra"
)

// InitMatches registers "matches" and its subcommands on the root command.
func InitMatches(rootCmd *cobra.Command) {
	matchesCmd := &cobra.Command{
		Use:   "matches",
		Short: "Browse fixtures and results",
	}
	matchesCmd.AddCommand(
		matchListCmd("list", "List all matches, newest first", "/api/matches"),
		matchListCmd("upcoming", "List matches that have not been played yet", "/api/matches/upcoming"),
	)
	rootCmd.AddCommand(matchesCmd)
}

func matchListCmd(use, short, path string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New()
			if err != nil {
				return err
			}
			var matches []models.Match
			if err := c.Get(cmd.Context(), path, &matches); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(matches)
			}

			rows := make([][]interface{}, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []interface{}{
					m.ID,
					m.DatePlayed.Local().Format(time.DateTime),
					m.HomeTeamName,
					score(m),
					m.AwayTeamName,
				})
			}
			output.RenderTable([]string{"ID", "Date", "Home", "Score", "Away"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func score(m models.Match) string {
	if m.ScoreHome == nil || m.ScoreAway == nil {
		return "vs"
	}
	return fmt.Sprintf("%d - %d", *m.ScoreHome, *m.ScoreAway)
}
