// Package export 将收支记录与储蓄目标导出为 CSV 或 Excel 表格
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 支持的导出格式
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// utf8BOM 让 Excel 正确识别 UTF-8 编码的 CSV
const utf8BOM = "\xEF\xBB\xBF"

// Table 导出表格：表头加数据行，单元格保留原始类型以便 Excel 按数字处理
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
}

// ContentType 返回导出格式对应的 MIME 类型
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// IsValidFormat 判断导出格式是否支持
func IsValidFormat(format string) bool {
	return format == FormatCSV || format == FormatXLSX
}

// Write 按格式写出表格
func Write(w io.Writer, format string, t *Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

// WriteCSV 写出带 BOM 的 CSV
func WriteCSV(w io.Writer, t *Table) error {
	buf := new(bytes.Buffer)
	buf.WriteString(utf8BOM)

	writer := csv.NewWriter(buf)
	if err := writer.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteXLSX 写出单工作表的 Excel 文件，表头加粗
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range t.Rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if d, ok := v.(decimal.Decimal); ok {
				v = d.InexactFloat64()
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Headers))
		f.SetColWidth(sheet, "A", last, 18)
	}

	return f.Write(w)
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.StringFixed(2)
	default:
		return fmt.Sprint(x)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Transactions 收支记录表：Date,Type,Category,Description,Amount
func Transactions(list []models.Transaction) *Table {
	t := &Table{
		Sheet:   "Transactions",
		Headers: []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows:    make([][]interface{}, 0, len(list)),
	}
	for _, txn := range list {
		category := txn.CategoryName
		if category == "" {
			category = "Unknown"
		}
		t.Rows = append(t.Rows, []interface{}{txn.Date, txn.Type, category, deref(txn.Description), txn.Amount})
	}
	return t
}

// Goals 储蓄目标表，Progress % 为未截断的完成比例（两位小数）
func Goals(list []models.SavingsGoal) *Table {
	t := &Table{
		Sheet:   "Goals",
		Headers: []string{"Name", "Target Amount", "Current Amount", "Progress %", "Status", "Deadline", "Color"},
		Rows:    make([][]interface{}, 0, len(list)),
	}
	for _, g := range list {
		progress := decimal.Zero
		if g.TargetAmount > 0 {
			progress = decimal.NewFromFloat(g.CurrentAmount).
				Mul(decimal.NewFromInt(100)).
				DivRound(decimal.NewFromFloat(g.TargetAmount), 2)
		}
		t.Rows = append(t.Rows, []interface{}{
			g.Name, g.TargetAmount, g.CurrentAmount, progress, g.Status, deref(g.Deadline), deref(g.Color),
		})
	}
	return t
}
