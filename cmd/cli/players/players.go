package players

import (
	"fmt"

	"github.com/crucial707/league-api/cmd/cli/client"
	"github.com/crucial707/league-api/cmd/cli/output"
	"github.com/crucial707/league-api/internal/models"
	"github.com/spf13/cobra"
)

// InitPlayers registers "players" and its subcommands on the root command.
func InitPlayers(rootCmd *cobra.Command) {
	playersCmd := &cobra.Command{
		Use:   "players",
		Short: "Browse players",
	}
	playersCmd.AddCommand(listPlayersCmd())
	rootCmd.AddCommand(playersCmd)
}

func listPlayersCmd() *cobra.Command {
	var (
		asJSON bool
		teamID int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players, optionally for one team",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New()
			if err != nil {
				return err
			}
			path := "/api/players"
			if teamID > 0 {
				path = fmt.Sprintf("/api/teams/%d/players", teamID)
			}
			var players []models.Player
			if err := c.Get(cmd.Context(), path, &players); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(players)
			}

			rows := make([][]interface{}, 0, len(players))
			for _, p := range players {
				team := "-"
				if p.TeamName != nil {
					team = *p.TeamName
				}
				rows = append(rows, []interface{}{p.ID, p.FirstName + " " + p.LastName, p.Position, team})
			}
			output.RenderTable([]string{"ID", "Name", "Position", "Team"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	cmd.Flags().IntVar(&teamID, "team", 0, "Only players of this team id")
	return cmd
}
