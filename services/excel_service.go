package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseCatalogXLSX đọc sheet đầu tiên của một workbook Excel và đưa các dòng
// qua cùng pipeline chuẩn hóa với CSV (nhận diện header, suy độ khó, loại
// dòng thiếu tên).
func ParseCatalogXLSX(r io.Reader) (*ParsedCatalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("không thể mở file Excel: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("file Excel không có sheet nào")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("không thể đọc sheet %q: %w", sheet, err)
	}
	return normalizeRecords(rows)
}
