package users

import (
	"github.com/crucial707/league-api/cmd/cli/client"
	"github.com/crucial707/league-api/cmd/cli/output"
	"github.com/crucial707/league-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================

// InitUsers registers "users" and its subcommands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Browse league accounts",
		Long: `List the accounts known to the league API.
Login, register and logout live under the top-level commands.`,
	}
	usersCmd.AddCommand(listUsersCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func listUsersCmd() *cobra.Command {
	var (
		asJSON bool
		role   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New()
			if err != nil {
				return err
			}
			var users []models.User
			if err := c.Get(cmd.Context(), "/api/users", &users); err != nil {
				return err
			}

			if role != "" {
				filtered := users[:0]
				for _, u := range users {
					if u.Role == role {
						filtered = append(filtered, u)
					}
				}
				users = filtered
			}

			if asJSON {
				return output.PrintJSON(users)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format("2006-01-02")})
			}
			output.RenderTable([]string{"ID", "Username", "Email", "Role", "Created"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	cmd.Flags().StringVar(&role, "role", "", "Only show users with this role (user, admin, coach)")
	return cmd
}
