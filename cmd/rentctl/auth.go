package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account and start a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		u, err := c.Register(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (admin=%v)\n", u.Email, u.IsAdmin)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		u, err := c.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (admin=%v)\n", u.Email, u.IsAdmin)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Println("session cleared")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := newClient()
		if err != nil {
			return err
		}
		if !sess.LoggedIn() {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s (admin=%v)\n", sess.User.Email, sess.User.IsAdmin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
