package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/pkg/catalog"
)

func catalogCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect question catalogs",
	}
	cmd.AddCommand(catalogCheckCmd(e), catalogShowCmd(e))
	return cmd
}

func catalogCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a catalog file (defaults to the configured catalog)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cat catalog.Catalog
				err error
			)
			if len(args) == 1 {
				cat, err = catalog.Load(args[0])
			} else {
				cat, err = e.loadCatalog()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sections, %d questions\n", cat.Len(), len(cat.Questions()))
			return nil
		},
	}
}

func catalogShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the sections and questions of the configured catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := e.loadCatalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalogTable(cat))
			return nil
		},
	}
}

func catalogTable(cat catalog.Catalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "SECTION", "QUESTION", "TYPE", "REQUIRED", "OPTIONS")
	for i, section := range cat.Sections {
		for _, q := range section.Questions {
			values := make([]string, 0, len(q.Options))
			for _, opt := range q.Options {
				values = append(values, opt.Value)
			}
			required := ""
			if q.Required {
				required = "yes"
			}
			t.Row(strconv.Itoa(i), section.ID, q.ID, string(q.Type), required, strings.Join(values, ", "))
		}
	}
	return t.String()
}
