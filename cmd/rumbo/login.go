package main

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mvallesteros/rumbo/internal/auth"
	"github.com/mvallesteros/rumbo/internal/cli"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Authenticate against the backend",
		Long:  `Sign in with your email and password and save the session locally.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var email string
			if len(args) == 1 {
				email = args[0]
			} else {
				fmt.Print(cli.FormatPrompt("Correo"))
				if _, err := fmt.Scanln(&email); err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
			}
			email = strings.TrimSpace(email)

			fmt.Print(cli.FormatPrompt("Contraseña"))
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := string(passwordBytes)

			if err := auth.ValidateCredentials(email, password); err != nil {
				return err
			}

			session, err := auth.Login(ctx, baseURL(), email, password)
			if err != nil {
				return err
			}

			if user, ok := session.User(); ok {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Hola, %s. Sesión iniciada.", user.Name)))
			} else {
				fmt.Println(cli.FormatSuccess("Sesión iniciada."))
			}
			return nil
		},
	}
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := auth.ClearSession(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Sesión cerrada."))
			return nil
		},
	}
}
