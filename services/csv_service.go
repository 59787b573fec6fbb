package services

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// Các token nhận diện dòng header của file danh mục. Nếu dòng đầu không chứa
// token nào VÀ file có từ 4 cột trở lên thì coi như file không có header
// đúng chuẩn và ánh xạ cột theo vị trí cố định (category, name, difficulty, link).
var headerTokens = []string{"problem", "difficulty", "category", "link"}

// ParsedCatalog là kết quả chuẩn hóa một file danh mục
type ParsedCatalog struct {
	Problems []TrackedProblem
	Dropped  int // số dòng bị loại vì thiếu tên bài
}

// ParseCatalogCSV phân tích text CSV thành danh sách bài đã chuẩn hóa.
// Dòng thiếu tên bị loại (đếm, không báo lỗi); input không phân tích được
// trả về lỗi và kết quả rỗng, không bao giờ panic qua biên ingestion.
func ParseCatalogCSV(raw string) (*ParsedCatalog, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("không thể phân tích file CSV: %w", err)
	}
	return normalizeRecords(records)
}

// normalizeRecords chạy pipeline chuẩn hóa chung cho cả CSV lẫn XLSX
func normalizeRecords(records [][]string) (*ParsedCatalog, error) {
	result := &ParsedCatalog{Problems: []TrackedProblem{}}
	if len(records) < 2 {
		// chỉ có header (hoặc rỗng) -> danh mục rỗng
		return result, nil
	}

	header := records[0]
	rows := records[1:]

	if isHeaderless(header) {
		for _, rec := range rows {
			appendRow(result, positionalRow(rec))
		}
		return result, nil
	}

	cols := headerIndex(header)
	for _, rec := range rows {
		appendRow(result, headeredRow(cols, header, rec))
	}
	return result, nil
}

// appendRow loại dòng không có tên, các dòng còn lại nhận id theo chỉ số
// (bên gọi đánh lại id bằng StampCatalog khi ghép vào danh mục hiện có)
func appendRow(result *ParsedCatalog, tp TrackedProblem) {
	tp.Name = strings.TrimSpace(tp.Name)
	if tp.Name == "" {
		result.Dropped++
		return
	}
	tp.ID = len(result.Problems)
	result.Problems = append(result.Problems, tp)
}

func isHeaderless(header []string) bool {
	if len(header) < 4 {
		return false
	}
	for _, cell := range header {
		lower := strings.ToLower(cell)
		for _, token := range headerTokens {
			if strings.Contains(lower, token) {
				return false
			}
		}
	}
	return true
}

// positionalRow ánh xạ cột theo thứ tự cố định: category, name, difficulty, link
func positionalRow(rec []string) TrackedProblem {
	category := cellAt(rec, 0)
	name := cellAt(rec, 1)
	difficultyRaw := cellAt(rec, 2)
	link := cellAt(rec, 3)

	class, ok := ClassifyDifficulty(difficultyRaw)
	if !ok {
		// cột difficulty không nhận diện được -> suy ra từ category
		class = DifficultyOrDefault(category)
	}

	return TrackedProblem{
		Problem: models.Problem{
			Category:        category,
			Name:            name,
			Link:            link,
			DifficultyClass: class,
		},
		Status: models.StatusNotStarted,
	}
}

// headerIndex ánh xạ tên cột (đã hạ chữ, trim) sang chỉ số
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

func headeredRow(cols map[string]int, header, rec []string) TrackedProblem {
	category := lookup(cols, rec, "problem category", "category")
	name := lookup(cols, rec, "problem name", "name")
	link := lookup(cols, rec, "problem link", "link")

	status := models.ProgressStatus(strings.TrimSpace(lookup(cols, rec, "status")))
	if !status.Valid() {
		status = models.StatusNotStarted
	}

	return TrackedProblem{
		Problem: models.Problem{
			Category:        category,
			Name:            name,
			Link:            link,
			DifficultyClass: resolveDifficulty(cols, header, rec, category),
		},
		Status: status,
		Notes:  lookup(cols, rec, "notes"),
	}
}

// resolveDifficulty thử lần lượt: cột Difficulty/Difficulty Level tường minh,
// rồi bất kỳ cột nào có tên chứa "difficult", cuối cùng suy từ category.
// Không gì khớp thì mặc định medium.
func resolveDifficulty(cols map[string]int, header, rec []string, category string) models.DifficultyClass {
	if class, ok := ClassifyDifficulty(lookup(cols, rec, "difficulty", "difficulty level")); ok {
		return class
	}
	for i, cell := range header {
		if strings.Contains(strings.ToLower(cell), "difficult") {
			if class, ok := ClassifyDifficulty(cellAt(rec, i)); ok {
				return class
			}
		}
	}
	return DifficultyOrDefault(category)
}

func lookup(cols map[string]int, rec []string, names ...string) string {
	for _, name := range names {
		if i, ok := cols[name]; ok {
			if v := cellAt(rec, i); v != "" {
				return v
			}
		}
	}
	return ""
}

// cellAt đọc một ô an toàn, dòng ngắn hơn header trả về chuỗi rỗng
func cellAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// StampCatalog đánh lại id liên tiếp từ startID và gắn timestamp import cho
// mọi bài. Ghép vào danh mục hiện có: startID = max(id hiện có)+1; thay thế
// toàn bộ: startID = 0 (id là chỉ số dòng).
func StampCatalog(problems []TrackedProblem, startID int, now time.Time) {
	for i := range problems {
		problems[i].ID = startID + i
		problems[i].LastUpdated = now
		if !problems[i].DifficultyClass.Valid() {
			problems[i].DifficultyClass = models.DifficultyMedium
		}
	}
}

// NextProblemID trả về id kế tiếp cho danh mục hiện có (max+1, rỗng thì 0)
func NextProblemID(catalog []models.Problem) int {
	next := 0
	for _, p := range catalog {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// ExportCatalogCSV xuất danh sách hiển thị ra CSV với header cố định.
// Trường chứa dấu phẩy, nháy kép hoặc xuống dòng được encoding/csv tự bọc
// nháy và nhân đôi nháy kép bên trong.
func ExportCatalogCSV(list []TrackedProblem) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"Problem Category", "Problem Name", "Problem Link", "Status", "Notes"}); err != nil {
		return "", err
	}
	for _, tp := range list {
		row := []string{tp.Category, tp.Name, tp.Link, string(tp.Status), tp.Notes}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
