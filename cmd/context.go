package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var contextQuery string

var contextCmd = &cobra.Command{
	Use:   "context [code|database|git]",
	Short: "Print the project context handed to the assistant",
	Long: `Print the full project context, a single block when a type is given,
or the result of a gated database query with --query.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to initialize dependencies: %v", err)
		}
		defer deps.Close()

		ctx := context.Background()
		switch {
		case contextQuery != "":
			fmt.Print(deps.Coordinator.QueryDatabase(ctx, contextQuery))
		case len(args) == 1:
			fmt.Print(deps.Coordinator.SpecificContext(ctx, args[0]))
		default:
			fmt.Print(deps.Coordinator.FullContext(ctx))
		}
	},
}

func init() {
	contextCmd.Flags().StringVarP(&contextQuery, "query", "q", "", "run a SELECT * FROM <table> query through the safety gate")
}
