package reports

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/export"
)

type ExportCmd struct {
	Format string `arg:"" enum:"markdown,csv,json" help:"Output format: markdown, csv or json (full backup)."`
	Range  string `help:"Date range: current_month, last_30, all_time or custom." enum:"current_month,last_30,all_time,custom" default:"current_month"`
	From   string `help:"Custom range start (YYYY-MM-DD)."`
	To     string `help:"Custom range end (YYYY-MM-DD, default today)."`
	Out    string `help:"Directory to write the export into (default: export_dir from config)." type:"path"`
	Stdout bool   `help:"Print the document instead of writing a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if (c.From != "" || c.To != "") && c.Range != string(export.RangeCustom) {
		return fmt.Errorf("--from/--to require --range custom")
	}

	habits := ctx.Habits()
	now := ctx.Now()

	var content []byte
	var ext string
	prefix := constants.ExportFilePrefix

	switch c.Format {
	case "json":
		data, err := export.ToJSON(habits)
		if err != nil {
			return err
		}
		content, ext, prefix = data, "json", constants.BackupFilePrefix
	default:
		r, err := export.ResolveRange(export.RangePreset(c.Range), habits, now, c.From, c.To)
		if err != nil {
			return err
		}
		if c.Format == "csv" {
			content, ext = []byte(export.ToCSV(habits, r.Start, r.End)), "csv"
		} else {
			content, ext = []byte(export.ToMarkdown(habits, r.Start, r.End, now)), "md"
		}
	}

	if c.Stdout {
		ctx.Printf("%s", content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			ctx.Println()
		}
		return nil
	}

	dir := c.Out
	if dir == "" && ctx.Config != nil {
		dir = ctx.Config.ExportDir
	}
	path, err := export.WriteFile(dir, export.Filename(prefix, ext, now), content)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d habits to %s\n", len(habits), path)
	return nil
}
