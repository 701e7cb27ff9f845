package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
)

func newShowCmd() *cobra.Command {
	var (
		timetableID string
		day         string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "在终端打印课表网格",
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			grid, err := a.svc.Timetable.GetGrid(cmd.Context(), timetableID)
			if err != nil {
				return err
			}
			return renderGrid(cmd.OutOrStdout(), grid, strings.ToUpper(day))
		},
	}

	cmd.Flags().StringVar(&timetableID, "id", "", "课表版本 ID（默认活动版本）")
	cmd.Flags().StringVar(&day, "day", "", "仅显示某一天（MON~SAT）")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "禁用彩色输出")
	return cmd
}

// renderGrid 以表格形式输出网格；课间行高亮，空单元格以 "-" 弱化显示
func renderGrid(w io.Writer, grid *dto.GridResponse, day string) error {
	breakLabel := grid.BreakLabel
	if breakLabel == "" {
		breakLabel = service.DefaultBreakLabel
	}

	status := "历史版本"
	if grid.IsActive {
		status = "活动版本"
	}
	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s  %s  [%s]\n", title(grid.Name), grid.TimetableID, status)

	breakText := color.New(color.FgYellow, color.Bold).SprintFunc()
	emptyText := color.New(color.Faint).SprintFunc()

	header := []string{"Day", "Slot"}
	for _, d := range grid.Divisions {
		header = append(header, d.Name)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	rendered := 0
	for _, d := range grid.Days {
		if day != "" && d.Day != day {
			continue
		}
		for _, sr := range d.Slots {
			row := []string{d.Day, sr.Slot.StartTime + "-" + sr.Slot.EndTime}
			for _, c := range sr.Cells {
				switch c.Kind {
				case dto.CellBreak:
					row = append(row, breakText(breakLabel))
				case dto.CellEntry:
					row = append(row, c.Text("", breakLabel))
				default:
					row = append(row, emptyText(service.DocumentEmptyText))
				}
			}
			table.Append(row)
			rendered++
		}
	}
	if day != "" && rendered == 0 {
		return fmt.Errorf("无效的星期: %s（应为 MON~SAT）", day)
	}

	table.Render()
	return nil
}
