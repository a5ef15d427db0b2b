package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsclarke/hooktrap/internal/client"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <token>",
	Short: "Delete a token and all of its captured requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL)
		if err := c.DeleteToken(args[0]); err != nil {
			return err
		}
		fmt.Printf("Token %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
