package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/krishpatel1827/EduSync/internal/dto"
)

// ── 表格导出 ────────────────────────────────────────────────
//
// ToRows 将网格展开为行：
//   表头  ["Day", "Slot", D1, D2, ...]
//   数据  [MON, "08:45-09:45", cell, cell, ...]（顺序与网格一致，不重新排序）
//
// 两种编码共享同一行序列，仅"无排课"文本不同：
//   - 电子表格：""
//   - 分页文档："-"
// 课间行在两种编码中每个班级单元格均为课间标记。
// ─────────────────────────────────────────────────────────────

const (
	SpreadsheetEmptyText = ""
	DocumentEmptyText    = "-"
	DefaultBreakLabel    = "BREAK"

	spreadsheetSheetName = "Timetable"

	spreadsheetDayWidth  = 8.0
	spreadsheetSlotWidth = 14.0
	spreadsheetCellWidth = 12.0
)

// ToRows 生成表头 + 数据行
func ToRows(grid *dto.GridResponse, emptyText string) [][]string {
	breakLabel := grid.BreakLabel
	if breakLabel == "" {
		breakLabel = DefaultBreakLabel
	}

	header := make([]string, 0, 2+len(grid.Divisions))
	header = append(header, "Day", "Slot")
	for _, d := range grid.Divisions {
		header = append(header, d.Name)
	}

	rows := [][]string{header}
	for _, day := range grid.Days {
		for _, sr := range day.Slots {
			row := make([]string, 0, len(header))
			row = append(row, day.Day, sr.Slot.StartTime+"-"+sr.Slot.EndTime)
			for _, c := range sr.Cells {
				row = append(row, c.Text(emptyText, breakLabel))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// EncodeSpreadsheet 将行写入单个工作表（xlsx），表头加粗
func EncodeSpreadsheet(rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", spreadsheetSheetName); err != nil {
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}
	// 多行单元格需自动换行才能完整显示
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("创建表体样式失败: %w", err)
	}

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(spreadsheetSheetName, cellRef, &values); err != nil {
			return nil, fmt.Errorf("写入第 %d 行失败: %w", i+1, err)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return nil, fmt.Errorf("表格列数超出上限: %w", err)
		}
		if err := f.SetCellStyle(spreadsheetSheetName, "A1", lastCol+"1", headerStyle); err != nil {
			return nil, fmt.Errorf("设置表头样式失败: %w", err)
		}
		if len(rows) > 1 {
			lastCell := fmt.Sprintf("%s%d", lastCol, len(rows))
			if err := f.SetCellStyle(spreadsheetSheetName, "A2", lastCell, bodyStyle); err != nil {
				return nil, fmt.Errorf("设置表体样式失败: %w", err)
			}
		}

		if err := setColumnWidths(f, len(rows[0]), lastCol); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// setColumnWidths 列宽：星期 / 时间段 / 各班级
func setColumnWidths(f *excelize.File, columns int, lastCol string) error {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", spreadsheetDayWidth},
		{"B", "B", spreadsheetSlotWidth},
	}
	if columns > 2 {
		widths = append(widths, struct {
			from, to string
			width    float64
		}{"C", lastCol, spreadsheetCellWidth})
	}
	for _, w := range widths {
		if err := f.SetColWidth(spreadsheetSheetName, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("设置列宽 %s:%s 失败: %w", w.from, w.to, err)
		}
	}
	return nil
}

// ── 分页文档（PDF） ──

const (
	pdfMargin       = 10.0 // mm
	pdfDayColWidth  = 14.0
	pdfSlotColWidth = 26.0
	pdfCellPadding  = 1.5
	pdfHeaderExtra  = 4.0 // 表头底部额外留白
)

// DocumentStyle 分页文档表格样式
type DocumentStyle struct {
	FontSize float64
}

// EncodeDocument 将行渲染为横向 Letter 纸的带边框表格：
// 灰底白字加粗表头、米色表体、黑色全网格边框、小字号居中
func EncodeDocument(title string, rows [][]string, style DocumentStyle) (*bytes.Buffer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("无可渲染的行")
	}
	fontSize := style.FontSize
	if fontSize <= 0 {
		fontSize = 8
	}

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	widths := documentColumnWidths(len(rows[0]), pageW-2*pdfMargin)
	lineH := fontSize * 0.3528 * 1.25 // pt → mm，含行距

	var drawRow func(row []string, header bool)
	drawRow = func(row []string, header bool) {
		if header {
			pdf.SetFont("Helvetica", "B", fontSize)
			pdf.SetFillColor(128, 128, 128) // grey
			pdf.SetTextColor(245, 245, 245) // whitesmoke
		} else {
			pdf.SetFont("Helvetica", "", fontSize)
			pdf.SetFillColor(245, 245, 220) // beige
			pdf.SetTextColor(0, 0, 0)
		}

		cellLines := make([][]string, len(row))
		maxLines := 1
		for i, text := range row {
			cellLines[i] = wrapCellText(pdf, tr(text), widths[i]-2*pdfCellPadding)
			if len(cellLines[i]) > maxLines {
				maxLines = len(cellLines[i])
			}
		}
		rowH := float64(maxLines)*lineH + 2*pdfCellPadding
		if header {
			rowH += pdfHeaderExtra
		}

		if pdf.GetY()+rowH > pageH-pdfMargin {
			pdf.AddPage()
			if !header {
				drawRow(rows[0], true)
			}
		}

		x, y := pdfMargin, pdf.GetY()
		for i := range row {
			pdf.Rect(x, y, widths[i], rowH, "FD")
			textTop := y + (rowH-float64(len(cellLines[i]))*lineH)/2
			for j, line := range cellLines[i] {
				pdf.SetXY(x, textTop+float64(j)*lineH)
				pdf.CellFormat(widths[i], lineH, line, "", 0, "CM", false, 0, "")
			}
			x += widths[i]
		}
		pdf.SetXY(pdfMargin, y+rowH)
	}

	pdf.AddPage()
	drawRow(rows[0], true)
	for _, row := range rows[1:] {
		drawRow(row, false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("输出 PDF 失败: %w", err)
	}
	return buf, nil
}

// documentColumnWidths 前两列固定宽度，其余班级列平分剩余宽度
func documentColumnWidths(cols int, usable float64) []float64 {
	widths := make([]float64, cols)
	if cols == 0 {
		return widths
	}
	widths[0] = pdfDayColWidth
	if cols == 1 {
		return widths
	}
	widths[1] = pdfSlotColWidth
	if cols > 2 {
		each := (usable - pdfDayColWidth - pdfSlotColWidth) / float64(cols-2)
		for i := 2; i < cols; i++ {
			widths[i] = each
		}
	}
	return widths
}

// wrapCellText 按换行符拆分，再按列宽折行；空行保留
func wrapCellText(pdf *fpdf.Fpdf, text string, width float64) []string {
	var lines []string
	for _, seg := range strings.Split(text, "\n") {
		parts := pdf.SplitText(seg, width)
		if len(parts) == 0 {
			parts = []string{""}
		}
		lines = append(lines, parts...)
	}
	return lines
}
