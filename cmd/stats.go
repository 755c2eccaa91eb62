package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/pathview/renderer"
	"github.com/olekukonko/tablewriter"
)

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "LAST FRAME", stats.RenderTime.String()})

	table.Render()
	logger.Noticef(
		"rendered %d frames (%d accumulated); scene contains %d boxes and %d lights\n%s",
		stats.Frames, stats.AccumulatedFrames, stats.Boxes, stats.Lights, buf.String(),
	)
}
