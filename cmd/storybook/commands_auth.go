package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storybook-client/internal/models"
	"storybook-client/internal/session"
	"storybook-client/internal/ui"
)

func registerCmd() *cobra.Command {
	var email, password, firstName, lastName string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			var err error
			if password == "" {
				if password, err = promptPassword("Password"); err != nil {
					return err
				}
			}
			if err := current.session.Register(cmd.Context(), email, password, firstName, lastName); err != nil {
				return err
			}
			fmt.Printf("Registered as %s. Check your inbox for a verification code,\n", email)
			fmt.Println("then run: storybook verify-email --email", email, "--code <code>")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			var err error
			if password == "" {
				if password, err = promptPassword("Password"); err != nil {
					return err
				}
			}
			if err := current.session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			snap := current.session.Current()
			fmt.Printf("Signed in as %s\n", snap.User.Email)
			if !snap.User.EmailVerified {
				fmt.Println("Note: your email is not verified yet; some features are limited.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func verifyEmailCmd() *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Confirm the account email with the mailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" {
				return fmt.Errorf("--email and --code are required")
			}
			if err := current.session.VerifyEmail(cmd.Context(), email, code); err != nil {
				return err
			}
			fmt.Println("Email verified.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "verification code")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Локальная очистка произойдет даже если сервер недоступен.
			current.session.Logout(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			snap := current.session.Current()
			if snap.State != session.StateAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s %s <%s>\n", snap.User.FirstName, snap.User.LastName, snap.User.Email)
			if snap.User.SubscriptionLevel != "" {
				fmt.Printf("plan: %s\n", snap.User.SubscriptionLevel)
			}
			return nil
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-verify the stored token (use after an OAuth sign-in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.session.Refresh(cmd.Context()); err != nil {
				return err
			}
			if current.session.IsAuthenticated() {
				fmt.Println("Session is valid.")
			} else {
				fmt.Println("No valid session.")
			}
			return nil
		},
	}
}

func authURLCmd() *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "auth-url",
		Short: "Print the OAuth sign-in URL for a provider",
		Long: `Print the OAuth sign-in URL for a provider.

Open the URL in a browser; after the redirect completes the backend sets
the token, run 'storybook refresh' to pick the session up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch provider {
			case "google":
				fmt.Println(current.client.GoogleAuthURL())
			case "apple":
				fmt.Println(current.client.AppleAuthURL())
			default:
				return fmt.Errorf("unknown provider %q (google or apple)", provider)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "google", "oauth provider: google or apple")
	return cmd
}

func profileCmd() *cobra.Command {
	var firstName, lastName string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}

			if cmd.Flags().Changed("first-name") || cmd.Flags().Changed("last-name") {
				update := models.ProfileUpdate{}
				if cmd.Flags().Changed("first-name") {
					update.FirstName = &firstName
				}
				if cmd.Flags().Changed("last-name") {
					update.LastName = &lastName
				}
				profile, err := current.client.UpdateProfile(ctx, update)
				if err != nil {
					return err
				}
				fmt.Print(ui.Profile(*profile))
				return nil
			}

			profile, err := current.client.GetProfile(ctx)
			if err != nil {
				return err
			}
			fmt.Print(ui.Profile(*profile))
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show story statistics for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			stats, err := current.client.GetStats(ctx)
			if err != nil {
				return err
			}
			fmt.Println(ui.Stats(*stats))
			return nil
		},
	}
}

func subscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscription",
		Short: "Show the current plan and remaining quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			sub, err := current.client.GetSubscription(ctx)
			if err != nil {
				return err
			}
			fmt.Print(ui.Subscription(*sub))
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Backend is up.")
			return nil
		},
	}
}
