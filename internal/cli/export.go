package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/krishpatel1827/EduSync/internal/service"
)

func newExportCmd() *cobra.Command {
	var (
		timetableID string
		divisionID  string
		format      string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出课表文件（xlsx | pdf | ics）",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			buf, filename, err := exportTimetable(cmd.Context(), a.svc.Export, format, timetableID, divisionID)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filename
			} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				path = filepath.Join(path, filename)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("写入文件失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出 %s（%d 字节）\n", path, buf.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&timetableID, "id", "", "课表版本 ID（默认活动版本）")
	cmd.Flags().StringVar(&divisionID, "division", "", "仅导出某个班级（仅 ics）")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "导出格式：xlsx | pdf | ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件或目录（默认当前目录下的版本名称）")
	return cmd
}

// exportTimetable 按格式分派导出
func exportTimetable(ctx context.Context, exporter service.ExportService, format, timetableID, divisionID string) (*bytes.Buffer, string, error) {
	switch format {
	case "xlsx", "excel":
		return exporter.ExportSpreadsheet(ctx, timetableID)
	case "pdf":
		return exporter.ExportPDF(ctx, timetableID)
	case "ics":
		return exporter.ExportICS(ctx, timetableID, divisionID)
	default:
		return nil, "", fmt.Errorf("不支持的导出格式: %s", format)
	}
}
