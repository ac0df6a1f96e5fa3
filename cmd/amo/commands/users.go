package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage account users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List account users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			users, err := client.Users().List(context.Background()).All()
			if err != nil {
				return fmt.Errorf("listing users: %w", err)
			}

			if handled, err := renderStructured(users); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Email")

			for _, user := range users {
				_ = table.Append(strconv.FormatInt(user.ID, 10), user.Name, user.Email)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Show one account user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("getting user: %w", err)
			}

			if handled, err := renderStructured(user); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.FormatInt(user.ID, 10))
			_ = table.Append("Name", user.Name)
			_ = table.Append("Email", user.Email)
			_ = table.Append("Lang", user.Lang)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
