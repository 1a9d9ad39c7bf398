package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Browse users",
	}

	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersListCommand())

	return cmd
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user the access token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().GetSelf(context.Background())
			if err != nil {
				return fmt.Errorf("getting current user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("getting user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func newUsersListCommand() *cobra.Command {
	var searchTerm string

	cmd := &cobra.Command{
		Use:   "list ACCOUNT_ID",
		Short: "List users in an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := canvas.NewParams()
			if searchTerm != "" {
				params = params.Add("search_term", searchTerm)
			}

			users, err := client.Users().ListForAccount(accountID, params).All(context.Background())
			if err != nil {
				return fmt.Errorf("listing account users: %w", err)
			}

			return outputUsers(users)
		},
	}

	cmd.Flags().StringVar(&searchTerm, "search", "", "filter users by name or login")

	return cmd
}

func outputUser(user *canvas.User) error {
	if done, err := renderStructured(user); done {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", strconv.FormatInt(user.ID, 10))
	_ = table.Append("Name", user.Name)

	if user.LoginID != "" {
		_ = table.Append("Login", user.LoginID)
	}

	if user.Email != "" {
		_ = table.Append("Email", user.Email)
	}

	return table.Render()
}

func outputUsers(users []canvas.User) error {
	if done, err := renderStructured(users); done {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Login", "Email")

	for _, user := range users {
		_ = table.Append(
			strconv.FormatInt(user.ID, 10),
			user.Name,
			user.LoginID,
			user.Email,
		)
	}

	return table.Render()
}
