package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/toolbox/internal/core/events"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default roles, users, areas and permissions",
	Long: `Seed an empty database with the default roles, sample users, functional areas and
the screen permissions from the screens configuration. Tables that already hold rows are left alone.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to initialize dependencies: %v", err)
		}
		defer deps.Close()

		if err := deps.Initializer.Run(context.Background()); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		deps.EventBus.Wait()

		// Drops any cached project context so the assistant sees the seeded tables.
		touched := events.NewEntityChangedEvent(events.EventTypeSchemaTouched, 0, "seed")
		if err := deps.EventBus.PublishSync(context.Background(), touched); err != nil {
			deps.Logger.Warn("schema change notification failed", "error", err)
		}
		deps.Logger.Info("seed completed")
	},
}
