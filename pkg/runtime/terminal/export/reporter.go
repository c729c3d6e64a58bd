package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        24,
		ValueWidth:       64,
		UnitWidth:        6,
		DescriptionWidth: 32,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"join": strings.Join,
	}

	tmpl := `
{{.Title}} ({{.Period.Duration}} days)

Active Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
Categories: {{if .Selection}}{{join .Selection ", "}}{{else}}none{{end}}
Total Sales: {{.Total}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// HandleResultSet prints an ad-hoc query result with columns sized to fit
// their widest cell.
func (c *Reporter) HandleResultSet(rs *store.ResultSet) error {
	if rs == nil || len(rs.Columns) == 0 {
		_, err := fmt.Fprintln(c.writer, "(no columns)")
		return err
	}

	cells := make([][]string, len(rs.Rows))
	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = len(col)
	}
	for r, row := range rs.Rows {
		cells[r] = make([]string, len(rs.Columns))
		for i := range rs.Columns {
			var v interface{}
			if i < len(row) {
				v = row[i]
			}
			cells[r][i] = formatCell(v)
			if len(cells[r][i]) > widths[i] {
				widths[i] = len(cells[r][i])
			}
		}
	}

	var sb strings.Builder
	separator := func() {
		sb.WriteString("+")
		for _, w := range widths {
			sb.WriteString(strings.Repeat("-", w+2))
			sb.WriteString("+")
		}
		sb.WriteString("\n")
	}
	line := func(values []string) {
		sb.WriteString("|")
		for i, v := range values {
			fmt.Fprintf(&sb, " %-*s |", widths[i], v)
		}
		sb.WriteString("\n")
	}

	separator()
	line(rs.Columns)
	separator()
	for _, row := range cells {
		line(row)
	}
	separator()
	fmt.Fprintf(&sb, "(%d rows)\n", len(rs.Rows))

	_, err := io.WriteString(c.writer, sb.String())
	return err
}

func formatCell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if value.Hour() == 0 && value.Minute() == 0 && value.Second() == 0 && value.Nanosecond() == 0 {
			return value.Format("2006-01-02")
		}
		return value.Format(time.RFC3339)
	case float32, float64:
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
