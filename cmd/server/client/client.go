// Package client provides test commands for the coc-api gRPC service
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the coc-api server",
	Long:  `Client commands allow you to test the coc-api server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(rollDiceCmd)
	ClientCmd.AddCommand(getRollSessionCmd)
	ClientCmd.AddCommand(clearRollSessionCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createDiceClient creates a dice service client
func createDiceClient() (apiv1alpha1.DiceServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return apiv1alpha1.NewDiceServiceClient(conn), cleanup, nil
}

func printRolls(w io.Writer, rolls []*apiv1alpha1.DiceRoll) {
	for i, roll := range rolls {
		fmt.Fprintf(w, "\n🎲 Roll %d:\n", i+1)
		fmt.Fprintf(w, "  Roll ID: %s\n", roll.RollId)
		fmt.Fprintf(w, "  Notation: %s\n", roll.Notation)
		fmt.Fprintf(w, "  Individual Dice: %v\n", roll.Dice)
		if roll.Modifier != 0 {
			fmt.Fprintf(w, "  Modifier: %+d\n", roll.Modifier)
		}
		fmt.Fprintf(w, "  Total: %d\n", roll.Total)
		if roll.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", roll.Description)
		}
	}
}
