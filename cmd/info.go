package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/pathview/asset/model"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print the bounds of one or more models.
func ModelInfo(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	setupLogging(ctx, cfg.LogLevel)

	paths := []string(ctx.Args())
	if len(paths) == 0 {
		paths = []string{cfg.Model}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Model", "Meshes", "Vertices", "Faces", "Min", "Max", "World scale"})
	for _, path := range paths {
		m, err := model.Read(path)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("could not read %s: %s", path, err), 1)
		}

		table.Append([]string{
			m.Path,
			fmt.Sprintf("%d", m.Meshes),
			fmt.Sprintf("%d", m.Vertices),
			fmt.Sprintf("%d", m.Faces),
			m.Bounds[0].String(),
			m.Bounds[1].String(),
			fmt.Sprintf("%.3f", m.WorldScale()),
		})
	}

	table.Render()
	logger.Noticef("model info\n%s", buf.String())
	return nil
}
