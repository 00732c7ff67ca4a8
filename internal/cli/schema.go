package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/pkg/schema"
)

func schemaCmd(e *env) *cobra.Command {
	var opts schema.Options
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document describing submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := e.loadCatalog()
			if err != nil {
				return err
			}
			out, err := schema.JSON(cmd.Context(), cat, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			_, err = w.Write([]byte("\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "Document title (defaults to the catalog title)")
	cmd.Flags().StringVar(&opts.Version, "api-version", "", "Document version")
	return cmd
}
