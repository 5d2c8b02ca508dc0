package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasktrail/tasktrail/client"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit log",
	}
	cmd.AddCommand(auditListCmd())
	return cmd
}

func auditListCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Audit.List(context.Background(), &client.AuditListOptions{
				Page:  page,
				Limit: limit,
			})
			if err != nil {
				fatal("list audit entries", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "TASK", "TIME"}
				var rows [][]string
				for _, e := range resp.Data {
					taskID := "-"
					if e.TaskID != nil {
						taskID = strconv.FormatInt(*e.TaskID, 10)
					}
					rows = append(rows, []string{
						strconv.FormatInt(e.ID, 10),
						e.Action,
						taskID,
						e.CreatedAt.Format(time.RFC3339),
					})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, e := range resp.Data {
					fmt.Println(e.ID)
				}
				return
			}
			output(resp, "")
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	return cmd
}
