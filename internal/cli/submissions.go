package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/schema"
	"github.com/goliatone/go-pmsform/pkg/submission"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

// ErrIncompleteImport is returned when imported answers miss required
// questions.
var ErrIncompleteImport = errors.New("import: required questions are missing")

func submissionsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Read and import stored submissions",
	}
	cmd.AddCommand(submissionsListCmd(e), submissionsShowCmd(e), submissionsImportCmd(e))
	return cmd
}

func submissionsListCmd(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "CREATED", "SUBMITTER", "TIMELINE", "DEPLOYMENT", "MULTI-PROPERTY", "WHITE-LABEL")
			for _, rec := range records {
				t.Row(
					rec.ID,
					rec.CreatedAt.Local().Format(time.DateTime),
					rec.Record.SubmitterName,
					rec.Record.TargetTimeline,
					rec.Record.DeploymentModel,
					yesNo(rec.Record.MultiPropertySupport),
					yesNo(rec.Record.WhiteLabeled),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows (0 for all)")
	return cmd
}

func submissionsShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one stored submission as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, rec)
		},
	}
}

func submissionsImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <answers.json>",
		Short: "Validate a complete answer set and store it without prompting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := e.loadCatalog()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			values, err := answers.DecodeJSON(cat, raw)
			if err != nil {
				return err
			}
			if result := validation.ValidateCatalog(cat, values); !result.Valid {
				lines := make([]string, 0, len(result.Issues))
				for _, issue := range result.Issues {
					lines = append(lines, fmt.Sprintf("%s/%s: %s", issue.Section, issue.Field, issue.Message))
				}
				return fmt.Errorf("%w:\n  %s", ErrIncompleteImport, strings.Join(lines, "\n  "))
			}
			if err := schema.ValidateFormData(cat, values); err != nil {
				return err
			}

			store, err := e.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stored, err := store.Create(cmd.Context(), submission.DerivationFor(cat).Build(values))
			if err != nil {
				return err
			}
			e.logger.Info("Submission imported",
				slog.String("id", stored.ID),
				slog.String("submitter", stored.Record.SubmitterName),
			)
			fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
