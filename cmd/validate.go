package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nemclear/config"
	"github.com/kilianp07/nemclear/inputs"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input tables without solving",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mkt, err := inputs.Load(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}
	if err := mkt.Validate(); err != nil {
		return err
	}
	cmd.Printf("inputs valid: %d regions, %d generators, %d price bands, %d bids, %d interconnectors\n",
		len(mkt.Regions), len(mkt.Generators), len(mkt.PriceBands), len(mkt.Bids), len(mkt.Interconnectors))
	return nil
}
