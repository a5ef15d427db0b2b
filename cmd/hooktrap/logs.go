package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsclarke/hooktrap/internal/client"
)

var logsCount int

var logsCmd = &cobra.Command{
	Use:   "logs <token>",
	Short: "Show captured requests for a token, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL)
		requests, err := c.GetLogs(args[0], logsCount)
		if err != nil {
			return err
		}

		if len(requests) == 0 {
			fmt.Println("No captured requests found.")
			return nil
		}

		fmt.Printf("%-19s  %-7s  %s\n", "TIME", "METHOD", "VALUE")
		for _, r := range requests {
			fmt.Printf("%-19s  %-7s  %s\n", formatTime(r.Date), r.MessageObject.Method, r.MessageObject.Value)
			if r.MessageObject.Body != nil {
				fmt.Printf("    body: %s\n", *r.MessageObject.Body)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVar(&logsCount, "count", 100, "maximum number of requests to fetch (server caps at 1000)")
}
