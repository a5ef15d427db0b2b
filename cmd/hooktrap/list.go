package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsclarke/hooktrap/internal/client"
	"github.com/rsclarke/hooktrap/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all webhook tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL)
		tokens, err := c.ListTokens()
		if err != nil {
			return err
		}

		if len(tokens) == 0 {
			fmt.Println("No tokens found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %s\n", "TOKEN", "CREATED", "WEBHOOK URL")
		for _, t := range tokens {
			fmt.Printf("%-36s  %-19s  %s\n", t.Token, formatTime(t.CreatedAt), t.WebhookURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func formatTime(value string) string {
	t, err := time.Parse(models.TimeFormat, value)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02 15:04:05")
}
