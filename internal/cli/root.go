// Package cli wires the quote-wizard command line.
package cli

import (
	"github.com/spf13/cobra"

	"quote-wizard/internal/config"
)

var cfg config.Config

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "quote-wizard",
		Short:        "Moving-quote calculator wizard backend",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), previewCmd())
	return root
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command, flags config.Config) error {
	c, err := config.FromEnv()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("port") {
		c.Port = flags.Port
	}
	if f.Changed("pricing-url") {
		c.PricingAPIURL = flags.PricingAPIURL
	}
	if f.Changed("pricing-timeout") {
		c.PricingTimeout = flags.PricingTimeout
	}
	if f.Changed("debounce") {
		c.Debounce = flags.Debounce
	}
	if f.Changed("company") {
		c.CompanySlug = flags.CompanySlug
	}
	if f.Changed("session-ttl") {
		c.SessionTTL = flags.SessionTTL
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}
