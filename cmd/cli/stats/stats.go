package stats

import (
	"fmt"

	"github.com/crucial707/league-api/cmd/cli/client"
	"github.com/crucial707/league-api/cmd/cli/output"
	"github.com/crucial707/league-api/internal/models"
	"github.com/spf13/cobra"
)

// InitStats registers "stats" and its subcommands on the root command.
func InitStats(rootCmd *cobra.Command) {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "League statistics",
	}
	statsCmd.AddCommand(topScorersCmd())
	rootCmd.AddCommand(statsCmd)
}

func topScorersCmd() *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "top-scorers",
		Short: "Show the goals leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New()
			if err != nil {
				return err
			}
			var scorers []models.TopScorer
			if err := c.Get(cmd.Context(), fmt.Sprintf("/api/statistics/top-scorers?limit=%d", limit), &scorers); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(scorers)
			}

			rows := make([][]interface{}, 0, len(scorers))
			for i, s := range scorers {
				rows = append(rows, []interface{}{i + 1, s.FirstName + " " + s.LastName, s.TeamName, s.Goals})
			}
			output.RenderTable([]string{"#", "Player", "Team", "Goals"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of players to show")
	return cmd
}
