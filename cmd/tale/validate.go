package main

import (
	"fmt"

	"github.com/magefree/mage-tale-go/internal/game/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for dangling outcome and item references",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, cat, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			findings := catalog.Validate(cat)
			out := cmd.OutOrStdout()
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			logger.Info("catalog validated",
				zap.Int("cards", len(cat.Cards())),
				zap.Int("outcomes", len(cat.OutcomeIDs())),
				zap.Int("items", len(cat.ItemIDs())),
				zap.Int("findings", len(findings)),
			)
			if len(findings) > 0 {
				return fmt.Errorf("catalog has %d finding(s)", len(findings))
			}
			fmt.Fprintln(out, "catalog ok")
			return nil
		},
	}
}
