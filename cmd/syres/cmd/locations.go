package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Fetches the catalog and prints the location names it tags.",
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
		catalog, err := client.FetchCatalog(ctx, session)
		if err != nil {
			return err
		}

		names := catalog.LocationNames()
		if len(names) == 0 {
			fmt.Println("the catalog carries no location tags")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
