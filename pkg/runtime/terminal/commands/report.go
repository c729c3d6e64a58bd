package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	categories []string
	format     string
	source     Source
	reporters  map[string]Reporter
}

func NewReportCmd(source Source, reporters map[string]Reporter) *cobra.Command {
	rc := &ReportCmd{source: source, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard report for a category selection",
		RunE:  rc.run,
	}

	cmd.Flags().StringSliceVar(&rc.categories, "category", nil,
		"Categories to include (repeatable or comma-separated, default all)")
	cmd.Flags().StringVar(&rc.format, "format", "text", "Output format (text or table)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	reporter, ok := rc.reporters[rc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q. Supported formats: %s", rc.format, rc.supportedFormats())
	}

	sel := filter.ParseSelection(rc.categories, cmd.Flags().Changed("category"))
	view := rc.source.Dashboard().Recompute(sel)

	return reporter.Handle(view.Report())
}

func (rc *ReportCmd) supportedFormats() string {
	formats := make([]string, 0, len(rc.reporters))
	for name := range rc.reporters {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return strings.Join(formats, ", ")
}
