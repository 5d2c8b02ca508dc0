package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasktrail/tasktrail/client"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskCreateCmd())
	cmd.AddCommand(taskGetCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskListCmd())
	return cmd
}

// parseTaskID converts a positional argument into a task ID.
func parseTaskID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: task id must be a positive integer, got %q\n", arg)
		os.Exit(1)
	}
	return id
}

func taskCreateCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			task, err := apiClient.Tasks.Create(context.Background(), &client.TaskRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				fatal("create task", err)
			}
			output(task, strconv.FormatInt(task.ID, 10))
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	return cmd
}

func taskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a task by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			task, err := apiClient.Tasks.Get(context.Background(), parseTaskID(args[0]))
			if err != nil {
				fatal("get task", err)
			}
			output(task, strconv.FormatInt(task.ID, 10))
		},
	}
}

func taskUpdateCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseTaskID(args[0])

			// The API replaces both fields, so fetch current values for
			// any flag the caller left unset.
			if title == "" || description == "" {
				current, err := apiClient.Tasks.Get(context.Background(), id)
				if err != nil {
					fatal("fetch task", err)
				}
				if title == "" {
					title = current.Title
				}
				if description == "" {
					description = current.Description
				}
			}

			task, err := apiClient.Tasks.Update(context.Background(), id, &client.TaskRequest{
				Title:       title,
				Description: description,
			})
			if err != nil {
				fatal("update task", err)
			}
			output(task, strconv.FormatInt(task.ID, 10))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Tasks.Delete(context.Background(), parseTaskID(args[0])); err != nil {
				fatal("delete task", err)
			}
			fmt.Println("deleted")
		},
	}
}

func taskListCmd() *cobra.Command {
	var query string
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(cmd *cobra.Command, args []string) {
			if page < 0 || limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --page and --limit must be non-negative\n")
				os.Exit(1)
			}
			resp, err := apiClient.Tasks.List(context.Background(), &client.TaskListOptions{
				Query: query,
				Page:  page,
				Limit: limit,
			})
			if err != nil {
				fatal("list tasks", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "TITLE", "CREATED"}
				var rows [][]string
				for _, t := range resp.Data {
					rows = append(rows, []string{
						strconv.FormatInt(t.ID, 10),
						t.Title,
						t.CreatedAt.Format(time.RFC3339),
					})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, t := range resp.Data {
					fmt.Println(t.ID)
				}
				return
			}
			output(resp, "")
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Filter by title or description")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	return cmd
}
