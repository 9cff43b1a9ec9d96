package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"syres/lib/bookingui"
	"syres/lib/configuration"
	"syres/lib/scrapers/skedda"
	"syres/lib/telemetry"
)

// Config is the optional syres.json5 file, searched upward from the
// cwd. Everything has a built-in default.
type Config struct {
	BaseUrl   string   `json:"base_url"`
	Locations []string `json:"locations"`
}

var (
	flagBaseUrl      string
	flagCookiePolicy string
	flagLogOutput    string
)

var rootCmd = &cobra.Command{
	Use:   "syres",
	Short: "syres is an interactive terminal client for booking Switchyards spaces.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()

		client, config, err := setup(ctx)
		if err != nil {
			return err
		}

		model := bookingui.NewModel(client, config.Locations)
		program := tea.NewProgram(model, tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&flagBaseUrl, "base-url", "", "override the reservation site base url")
	rootCmd.PersistentFlags().StringVar(&flagCookiePolicy, "cookie-policy", "jar", "cookie replay strategy: jar, harvest or single (harvest/single are debug paths)")
	rootCmd.PersistentFlags().StringVar(&flagLogOutput, "log-output", "", "write JSON log records to this file")
	rootCmd.AddCommand(spacesCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup wires logging, telemetry and the scrape client from flags and
// the optional config file. A missing config file is not an error.
func setup(ctx context.Context) (*skedda.Client, Config, error) {
	err := telemetry.InitSlog(flagLogOutput)
	if err != nil {
		return nil, Config{}, err
	}

	config, err := configuration.ReadRecursively[Config]("syres.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, Config{}, err
	}
	if flagBaseUrl != "" {
		config.BaseUrl = flagBaseUrl
	}

	_, err = telemetry.SetupFromEnv(ctx, "syres")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, Config{}, err
	}
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
	}

	policy, err := skedda.ParseCookiePolicy(flagCookiePolicy)
	if err != nil {
		return nil, Config{}, err
	}

	client, err := skedda.NewClient(ctx, skedda.ClientOptions{
		BaseUrl:      config.BaseUrl,
		CookiePolicy: policy,
	})
	if err != nil {
		return nil, Config{}, err
	}
	return client, config, nil
}
