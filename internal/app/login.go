package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/bookctl/internal/session"
	"github.com/blackwell-systems/bookctl/internal/util"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		username string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the library server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return fmt.Errorf("username cannot be empty")
			}

			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password := strings.TrimSpace(line)

			s, err := session.SignIn(cmd.Context(), client, username, password, remember)
			if err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			ok("Signed in as %s", s.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().BoolVar(&remember, "remember", false, "Request a long-lived session")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			ok("Signed out")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var (
		username string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the library server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password := strings.TrimSpace(line)

			if err := session.Register(cmd.Context(), client, username, email, password); err != nil {
				return err
			}

			ok("Account created, run 'bookctl login' to sign in")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sess.LoggedIn() {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Println(sess.Username)
			return nil
		},
	}
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the signed-in account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Permanently delete the account and all its data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if !util.ConfirmStdin("Delete your account and all its data? This cannot be undone.") {
				return fmt.Errorf("aborted")
			}
			if err := session.DeleteAccount(cmd.Context(), client); err != nil {
				return err
			}
			ok("Account deleted")
			return nil
		},
	})

	return cmd
}
