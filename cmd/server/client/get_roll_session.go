package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var getRollSessionCmd = &cobra.Command{
	Use:   "get-roll-session [entity-id] [context]",
	Short: "Get existing dice roll session",
	Long: `Retrieve all dice rolls for a specific entity and context. Examples:

  get-roll-session inv-123 characteristics
  get-roll-session inv-456 checks`,
	Args: cobra.ExactArgs(2),
	RunE: getRollSession,
}

func getRollSession(cmd *cobra.Command, args []string) error {
	entityID := args[0]
	rollContext := args[1]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Getting roll session for entity %s (context: %s)...\n", entityID, rollContext)

	resp, err := client.GetRollSession(ctx, &apiv1alpha1.GetRollSessionRequest{
		EntityId: entityID,
		Context:  rollContext,
	})
	if err != nil {
		return fmt.Errorf("failed to get roll session: %w", err)
	}

	fmt.Fprintf(w, "\n📜 Roll Session:\n")
	fmt.Fprintf(w, "================\n")
	fmt.Fprintf(w, "Created: %s\n", time.Unix(resp.CreatedAt, 0).Format(time.DateTime))
	fmt.Fprintf(w, "Expires: %s\n", time.Unix(resp.ExpiresAt, 0).Format(time.DateTime))
	fmt.Fprintf(w, "Total Rolls: %d\n", len(resp.Rolls))
	printRolls(w, resp.Rolls)

	return nil
}
