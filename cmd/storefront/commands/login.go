package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the storefront backend",
		Long:  "Authenticate with email and password and store the session token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if viper.GetString("api") == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "API endpoint: ")

				endpoint, _ := reader.ReadString('\n')
				viper.Set("api", strings.TrimSpace(endpoint))
			}

			if email == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Email: ")

				line, _ := reader.ReadString('\n')
				email = strings.TrimSpace(line)
			}

			if email == "" {
				return constants.ErrEmptyEmail
			}

			if password == "" {
				secret, err := readPassword(cmd, reader)
				if err != nil {
					return err
				}

				password = secret
			}

			if password == "" {
				return constants.ErrEmptyPassword
			}

			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			login, err := client.Auth().Login(commandContext(cmd), &storefront.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", login.User.Name, login.User.Email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(int(syscall.Stdin)) {
		line, _ := reader.ReadString('\n')

		return strings.TrimSpace(line), nil
	}

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	return string(bytePassword), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the storefront backend",
		Long:  "Invalidate the session on the backend and remove the token from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("api") == "" {
				err := NewConfigPersister().UpdateToken("", time.Time{})
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			} else {
				client, cleanup, err := CreateClient(commandContext(cmd))
				if err != nil {
					return err
				}
				defer cleanup()

				err = client.Auth().Logout(commandContext(cmd))
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				}
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Long:  "Display the account behind the current session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			user, err := client.Auth().Me(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return render(cmd, user, func(out io.Writer) error {
				table := newTable(out, "Property", "Value")
				_ = table.Append("ID", user.ID)
				_ = table.Append("Name", user.Name)
				_ = table.Append("Email", user.Email)
				_ = table.Append("Role", user.Role)
				_ = table.Append("Admin", formatBool(user.IsAdmin()))

				return renderTable(table)
			})
		},
	}
}
