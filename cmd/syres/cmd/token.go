package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Establishes a session and prints the verification token and its paired cookies.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()

		client, _, err := setup(ctx)
		if err != nil {
			return err
		}

		session, err := client.EstablishSession(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("token: %s\n", session.Token)
		if len(session.Cookies) == 0 {
			fmt.Println("no cookies set by the booking page")
			return nil
		}
		for _, cookie := range session.Cookies {
			fmt.Printf("cookie: %s=%s\n", cookie.Name, cookie.Value)
		}
		return nil
	},
}
