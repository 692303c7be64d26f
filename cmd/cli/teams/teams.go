package teams

import (
	"github.com/crucial707/league-api/cmd/cli/client"
	"github.com/crucial707/league-api/cmd/cli/output"
	"github.com/crucial707/league-api/internal/models"
	"github.com/spf13/cobra"
)

// InitTeams registers "teams" and its subcommands on the root command.
func InitTeams(rootCmd *cobra.Command) {
	teamsCmd := &cobra.Command{
		Use:   "teams",
		Short: "Browse teams",
	}
	teamsCmd.AddCommand(listTeamsCmd())
	rootCmd.AddCommand(teamsCmd)
}

func listTeamsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New()
			if err != nil {
				return err
			}
			var teams []models.Team
			if err := c.Get(cmd.Context(), "/api/teams", &teams); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(teams)
			}

			rows := make([][]interface{}, 0, len(teams))
			for _, t := range teams {
				coach := "-"
				if t.CoachName != nil {
					coach = *t.CoachName
				}
				rows = append(rows, []interface{}{t.ID, t.Name, t.City, coach})
			}
			output.RenderTable([]string{"ID", "Name", "City", "Coach"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}
