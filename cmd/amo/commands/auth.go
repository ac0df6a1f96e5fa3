package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewAuthCommand creates the auth command group
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage credentials",
		Long:  "Store and inspect the credentials used to reach an amoCRM account",
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthStatusCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var (
		baseURL string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store account credentials",
		Long:  "Store the account base URL and a long-lived access token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = viper.GetString("base_url")
			}

			if baseURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Account base URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return ErrBaseURLNotConfigured
			}

			if token == "" {
				fmt.Print("Access token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))
				fmt.Println()
			}

			if token == "" {
				return ErrTokenNotConfigured
			}

			viper.Set("base_url", baseURL)
			viper.Set("token", token)

			// Verify the credentials before persisting them.
			client, err := createClient()
			if err != nil {
				return err
			}

			if _, err := client.Pipelines().List(context.Background()); err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			if err := viper.WriteConfig(); err != nil {
				if err := viper.SafeWriteConfig(); err != nil {
					return fmt.Errorf("writing config: %w", err)
				}
			}

			fmt.Fprintf(os.Stdout, "Logged in to %s\n", baseURL)

			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "account base URL")
	cmd.Flags().StringVar(&token, "token", "", "long-lived access token")

	return cmd
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL := viper.GetString("base_url")
			if baseURL == "" {
				fmt.Fprintln(os.Stdout, "Not logged in")

				return nil
			}

			fmt.Fprintf(os.Stdout, "Account:  %s\n", baseURL)

			switch {
			case viper.GetString("token") != "":
				fmt.Fprintln(os.Stdout, "Auth:     long-lived token")
			case viper.GetString("refresh_token") != "":
				fmt.Fprintln(os.Stdout, "Auth:     OAuth2 refresh token")
			default:
				fmt.Fprintln(os.Stdout, "Auth:     none")
			}

			return nil
		},
	}
}
