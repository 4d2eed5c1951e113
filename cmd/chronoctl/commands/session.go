package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func loginCmd(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Session.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			// Bookings are keyed per user, so load the new user's list.
			c.app.Bookings.InitBookings(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%d points)\n", sess.Username, sess.Points)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register [username] [email]",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Session.Register(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome aboard, %s\n", sess.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, ok := c.app.Session.Session()
			if !ok || !c.app.Session.IsAuthenticated() {
				return errors.New("not signed in")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", sess.Username, sess.Email)
			fmt.Fprintf(out, "points: %d\n", sess.Points)
			if len(sess.FavoriteTimePeriods) > 0 {
				fmt.Fprintf(out, "favorites: %s\n", strings.Join(sess.FavoriteTimePeriods, ", "))
			}
			return nil
		},
	}
}
