package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsclarke/hooktrap/internal/client"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new webhook token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL)
		tok, err := c.CreateToken()
		if err != nil {
			return err
		}

		fmt.Printf("Token:       %s\n", tok.Token)
		fmt.Printf("Webhook URL: %s\n", tok.WebhookURL)
		fmt.Printf("Created:     %s\n", tok.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
