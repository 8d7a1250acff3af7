package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Long: `List users registered in the console backend.

Examples:
  face-console users
  face-console users --search alice
  face-console users --all --json`,
	Args: cobra.NoArgs,
	RunE: runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().Int("page", 1, "Page number")
	usersCmd.Flags().Int("page-size", constants.DefaultUserListPageSize, "Users per page")
	usersCmd.Flags().String("search", "", "Filter by name or user ID")
	usersCmd.Flags().Bool("all", false, "Fetch every active user (ignores paging and search)")
	usersCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func runUsers(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newConsoleClient(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}
	ctx := context.Background()

	var list *faceapi.UserList
	if mustGetBool(cmd, "all") {
		users, err := client.ListAllUsers(ctx)
		if err != nil {
			return err
		}
		list = &faceapi.UserList{Total: len(users), Users: users}
	} else {
		list, err = client.GetUserList(ctx, faceapi.UserListParams{
			Page:     mustGetInt(cmd, "page"),
			PageSize: mustGetInt(cmd, "page-size"),
			Search:   mustGetString(cmd, "search"),
		})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
	}

	if mustGetBool(cmd, "json") {
		return writeJSON(os.Stdout, list, true)
	}

	if len(list.Users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("%-20s %-30s %-20s %s\n", "USER ID", "NAME", "CREATED", "STATUS")
	fmt.Printf("%-20s %-30s %-20s %s\n", "-------", "----", "-------", "------")
	for _, u := range list.Users {
		status := "active"
		if u.IsDeleted {
			status = "deleted"
		}
		fmt.Printf("%-20s %-30s %-20s %s\n", u.UserID, truncate(u.Name, 30), u.CreatedAt, status)
	}
	fmt.Printf("\nShowing %d of %d user(s)\n", len(list.Users), list.Total)
	return nil
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
