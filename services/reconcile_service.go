package services

import "github.com/vnkhanh/dsa-tracker-backend/models"

// TrackedProblem là một dòng hiển thị cho user: trường danh mục lấy từ
// danh sách dùng chung, status/ghi chú là của riêng user
type TrackedProblem struct {
	models.Problem
	Status models.ProgressStatus `json:"status"`
	Notes  string                `json:"notes"`
}

// Reconcile hợp nhất danh mục dùng chung với tiến độ đã lưu của một user.
//
// Danh mục quyết định bài nào tồn tại và theo thứ tự nào; bản ghi tiến độ
// khớp id chỉ đóng góp status/notes. Bản ghi tiến độ trỏ tới bài không còn
// trong danh mục bị loại âm thầm (mồ côi). saved nil hoặc rỗng cho ra danh
// mục với mọi bài ở trạng thái mặc định.
//
// Phép hợp nhất là lũy đẳng: reconcile kết quả của chính nó với cùng danh
// mục trả về danh sách không đổi, nên bên gọi ghi đè kết quả lại kho lưu
// tiến độ ngay sau khi hợp nhất để dữ liệu tự lành theo danh mục hiện tại.
func Reconcile(catalog []models.Problem, saved []models.UserProgress) []TrackedProblem {
	byProblem := make(map[int]models.UserProgress, len(saved))
	for _, entry := range saved {
		byProblem[entry.ProblemID] = entry
	}

	merged := make([]TrackedProblem, 0, len(catalog))
	for _, p := range catalog {
		tp := TrackedProblem{Problem: p, Status: models.StatusNotStarted}
		if entry, ok := byProblem[p.ID]; ok {
			if entry.Status != "" {
				tp.Status = entry.Status
			}
			tp.Notes = entry.Notes
		}
		merged = append(merged, tp)
	}
	return merged
}

// CountStatuses tính lại bộ đếm tổng hợp từ một danh sách hiển thị.
// Luôn tính từ đầu, không cộng dồn, để bộ đếm nhất quán với tiến độ đã lưu.
func CountStatuses(list []TrackedProblem) (completed, review, total int) {
	for _, tp := range list {
		switch tp.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusReview:
			review++
		}
	}
	return completed, review, len(list)
}
