package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var rollDescription string

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [entity-id] [context]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll-dice 3D6 inv-123 characteristics
  roll-dice 2D6+6 inv-123 characteristics --description Intelligence
  roll-dice D100 inv-456 checks`,
	Args: cobra.ExactArgs(3),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().StringVar(&rollDescription, "description", "", "description stored with the roll")
}

func rollDice(cmd *cobra.Command, args []string) error {
	notation := args[0]
	entityID := args[1]
	rollContext := args[2]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Rolling %s for entity %s (context: %s)...\n", notation, entityID, rollContext)

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId:            entityID,
		Context:             rollContext,
		Notation:            notation,
		ModifierDescription: rollDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	fmt.Fprintf(w, "\n🎲 Dice Roll Results:\n")
	fmt.Fprintf(w, "===================\n")
	printRolls(w, resp.Rolls)

	fmt.Fprintf(w, "\nSession expires at: %s\n", time.Unix(resp.ExpiresAt, 0).Format(time.DateTime))
	fmt.Fprintf(w, "Total rolls in session: %d\n", len(resp.Rolls))

	return nil
}
