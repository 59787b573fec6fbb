package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// ProblemFilter gom các điều kiện lọc; trường rỗng nghĩa là không lọc theo
// trường đó. Các điều kiện ghép với nhau bằng AND nên thứ tự áp dụng không
// ảnh hưởng kết quả.
type ProblemFilter struct {
	Search     string
	Category   string
	Status     models.ProgressStatus
	Difficulty models.DifficultyClass
}

// FilterProblems trả về các bài thỏa mọi điều kiện của f. Search khớp chuỗi
// con không phân biệt hoa thường trên tên, category và ghi chú; các filter
// còn lại so khớp chính xác.
func FilterProblems(list []TrackedProblem, f ProblemFilter) []TrackedProblem {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]TrackedProblem, 0, len(list))
	for _, tp := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(tp.Name), term) &&
			!strings.Contains(strings.ToLower(tp.Category), term) &&
			!strings.Contains(strings.ToLower(tp.Notes), term) {
			continue
		}
		if f.Category != "" && tp.Category != f.Category {
			continue
		}
		if f.Status != "" && tp.Status != f.Status {
			continue
		}
		if f.Difficulty != "" && tp.DifficultyClass != f.Difficulty {
			continue
		}
		result = append(result, tp)
	}
	return result
}

// GroupByDifficulty chia danh sách vào bốn nhóm độ khó cố định, mỗi nhóm sắp
// theo tên bằng so sánh collation. Bài có độ khó không hợp lệ được xếp vào
// medium lúc nhóm, không sửa dữ liệu gốc.
func GroupByDifficulty(list []TrackedProblem) map[models.DifficultyClass][]TrackedProblem {
	grouped := make(map[models.DifficultyClass][]TrackedProblem, len(models.AllDifficulties))
	for _, d := range models.AllDifficulties {
		grouped[d] = []TrackedProblem{}
	}

	for _, tp := range list {
		d := tp.DifficultyClass
		if !d.Valid() {
			d = models.DifficultyMedium
		}
		grouped[d] = append(grouped[d], tp)
	}

	c := collate.New(language.English)
	for d := range grouped {
		bucket := grouped[d]
		sort.SliceStable(bucket, func(i, j int) bool {
			return c.CompareString(bucket[i].Name, bucket[j].Name) < 0
		})
	}
	return grouped
}
