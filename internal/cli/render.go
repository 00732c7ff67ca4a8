package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	pmsform "github.com/goliatone/go-pmsform"
	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	htmlrenderer "github.com/goliatone/go-pmsform/pkg/renderers/html"
)

func renderCmd(e *env) *cobra.Command {
	var (
		section      string
		rendererName string
		answersPath  string
		templatesDir string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one section with the html or text renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := e.loadCatalog()
			if err != nil {
				return err
			}
			index, err := sectionIndex(cat, section)
			if err != nil {
				return err
			}

			values := answers.Map{}
			if answersPath != "" {
				raw, err := os.ReadFile(answersPath)
				if err != nil {
					return fmt.Errorf("read answers: %w", err)
				}
				if values, err = answers.DecodeJSON(cat, raw); err != nil {
					return err
				}
			}

			var htmlOptions []htmlrenderer.Option
			if templatesDir != "" {
				htmlOptions = append(htmlOptions, htmlrenderer.WithTemplatesDir(templatesDir))
			}
			registry, err := pmsform.NewRegistry(htmlOptions...)
			if err != nil {
				return err
			}

			out, err := pmsform.RenderPreview(cmd.Context(), registry, rendererName, cat, index, values, pmsform.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&section, "section", "0", "Section id or zero-based index")
	cmd.Flags().StringVar(&rendererName, "renderer", "text", "Renderer name (html, text)")
	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file with answers to prefill")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "Directory overriding the html templates")
	return cmd
}

// sectionIndex resolves a section given by id or by zero-based index.
func sectionIndex(cat catalog.Catalog, ref string) (int, error) {
	if idx, ok := cat.SectionIndex(ref); ok {
		return idx, nil
	}
	idx, err := strconv.Atoi(ref)
	if err != nil || idx < 0 || idx > cat.LastIndex() {
		return 0, fmt.Errorf("unknown section %q", ref)
	}
	return idx, nil
}
