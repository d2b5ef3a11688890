package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-support-chat/internal/domain"
	"github.com/tbourn/go-support-chat/internal/repo"
	"github.com/tbourn/go-support-chat/internal/services"
)

// cellWidth caps message columns in table output.
const cellWidth = 60

func newLogsCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the most recent interactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.LogsLimit
			}
			db, err := repo.OpenSQLite(cfg.DBPath, repo.Options{LogLevel: logger.Silent})
			if err != nil {
				return errors.Wrapf(err, "open database %s", cfg.DBPath)
			}
			defer func() { _ = repo.Close(db) }()

			if err := repo.EnsureSchema(cmd.Context(), db); err != nil {
				return err
			}
			rows, err := services.NewInteractionLog(db).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of rows (default LOGS_LIMIT)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the same triples GET /logs returns")
	return cmd
}

func writeJSON(w io.Writer, rows []domain.Interaction) error {
	out := make([][3]string, 0, len(rows))
	for _, it := range rows {
		out = append(out, it.Triple())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, rows []domain.Interaction) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no interactions yet")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tUSER\tBOT")
	for _, it := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Timestamp, cell(it.UserInput), cell(it.BotResponse))
	}
	return tw.Flush()
}

// cell flattens whitespace so a message stays on one row, then clips it.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= cellWidth {
		return s
	}
	return string(r[:cellWidth-1]) + "…"
}
