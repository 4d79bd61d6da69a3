package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rehnuma-chat/internal/client"
	"rehnuma-chat/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the Rehnuma server and its Gemini connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadClientConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		c := client.New(cfg.ServerURL, nil)
		out := cmd.OutOrStdout()

		health, err := c.Health(ctx)
		if err != nil {
			return fmt.Errorf("server %s unreachable: %w", cfg.ServerURL, err)
		}
		fmt.Fprint(out, formatHealth(cfg.ServerURL, health))

		test, err := c.Test(ctx)
		if err != nil {
			return fmt.Errorf("test request failed: %w", err)
		}
		fmt.Fprint(out, formatTest(test))
		return nil
	},
}

func formatHealth(url string, h *models.HealthResponse) string {
	key := "missing"
	if h.APIKeyConfigured {
		key = "configured"
	}
	return fmt.Sprintf("Server:  %s (%s)\nModel:   %s\nAPI key: %s\n", url, h.Status, h.Model, key)
}

func formatTest(t *models.TestResponse) string {
	line := "Test:    " + t.Status
	switch {
	case t.Response != "":
		line += " - " + t.Response
	case t.Message != "":
		line += " - " + t.Message
	case t.Error != "":
		line += " - " + t.Error
	}
	return line + "\n"
}
