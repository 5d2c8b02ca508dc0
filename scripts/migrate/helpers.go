package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// parseTime parses a legacy timestamp string. The old application wrote
// ISO-8601 via JavaScript Date.toISOString, but early rows used SQLite
// datetime format.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	slog.Warn("unparseable time, using now", "value", s)
	return time.Now().UTC()
}

// sanitizeURL removes credentials from a database URL for display.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable URL]"
	}
	u.User = nil
	return u.String()
}

// envOr returns the environment variable value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// allowedTables is the set of table names that countRows may query.
var allowedTables = map[string]bool{
	"tasks":      true,
	"audit_logs": true,
}

// countRows counts rows in a table.
func countRows(ctx context.Context, tx pgx.Tx, table string) (int, error) {
	if !allowedTables[table] {
		return 0, fmt.Errorf("disallowed table name: %s", table)
	}

	var count int
	sanitized := pgx.Identifier{table}.Sanitize()
	err := tx.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s", sanitized),
	).Scan(&count)
	return count, err
}

// printReport writes the final migration summary to stdout.
func printReport(r *report) {
	fmt.Println("=== migration report ===")
	fmt.Printf("source:           %s\n", r.Source)
	fmt.Printf("target:           %s\n", r.Target)
	fmt.Printf("dry run:          %v\n", r.DryRun)
	fmt.Printf("tasks read:       %d\n", r.TasksRead)
	fmt.Printf("tasks inserted:   %d\n", r.TasksInserted)
	fmt.Printf("tasks verified:   %d\n", r.TasksVerified)
	fmt.Printf("entries read:     %d\n", r.EntriesRead)
	fmt.Printf("entries inserted: %d\n", r.EntriesInserted)
	fmt.Printf("entries skipped:  %d\n", r.EntriesSkipped)
	fmt.Printf("entries verified: %d\n", r.EntriesVerified)
	for _, c := range r.SpotChecks {
		fmt.Printf("spot check:       %s\n", c)
	}
	fmt.Printf("duration:         %s\n", r.Duration)
	if r.Err != nil {
		fmt.Printf("error:            %v\n", r.Err)
	}
}
