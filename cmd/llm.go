package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/adedotun/medprep/internal/llm"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the LLM provider",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			fmt.Println("Provider:  (not configured)")
			fmt.Println("Error:    ", err)
			return nil
		}

		gateway, err := llm.NewGateway(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("start provider: %w", err)
		}

		speech := "unavailable"
		if gateway.CanSynthesize() {
			speech = "available"
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		fmt.Printf("Model:     %s\n", gateway.ModelID())
		fmt.Printf("Speech:    %s\n", speech)
		return nil
	},
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a test request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("provider not configured: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		gateway, err := llm.NewGateway(ctx, cfg)
		if err != nil {
			return fmt.Errorf("start provider: %w", err)
		}

		start := time.Now()
		resp, err := gateway.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ready"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("test request failed: %w", err)
		}

		fmt.Printf("Model:     %s\n", resp.Model)
		fmt.Printf("Latency:   %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Printf("Response:  %s\n", string(resp.Content))
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmCheckCmd)
}
