package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

func sampleCatalog() []models.Problem {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.Problem{
		{ID: 0, Category: "Arrays", Name: "Two Sum", Link: "https://example.com/two-sum", DifficultyClass: models.DifficultyEasy, LastUpdated: now},
		{ID: 1, Category: "Graphs", Name: "Clone Graph", DifficultyClass: models.DifficultyMedium, LastUpdated: now},
		{ID: 2, Category: "DP", Name: "Edit Distance", DifficultyClass: models.DifficultyHard, LastUpdated: now},
	}
}

// chuyển kết quả hợp nhất về dạng bản ghi tiến độ như khi lưu xuống DB
func asProgress(list []TrackedProblem) []models.UserProgress {
	saved := make([]models.UserProgress, 0, len(list))
	for _, tp := range list {
		saved = append(saved, models.UserProgress{
			ProblemID: tp.ID,
			Status:    tp.Status,
			Notes:     tp.Notes,
		})
	}
	return saved
}

func TestReconcile(t *testing.T) {
	catalog := sampleCatalog()

	t.Run("keeps user status and notes for matching ids", func(t *testing.T) {
		saved := []models.UserProgress{
			{ProblemID: 1, Status: models.StatusCompleted, Notes: "dùng BFS"},
		}

		merged := Reconcile(catalog, saved)
		if len(merged) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(merged))
		}
		if merged[1].Status != models.StatusCompleted {
			t.Errorf("expected status %q, got %q", models.StatusCompleted, merged[1].Status)
		}
		if merged[1].Notes != "dùng BFS" {
			t.Errorf("expected notes preserved, got %q", merged[1].Notes)
		}
	})

	t.Run("catalog wins for descriptive fields", func(t *testing.T) {
		saved := []models.UserProgress{
			{ProblemID: 0, Status: models.StatusReview, Notes: "xem lại"},
		}

		merged := Reconcile(catalog, saved)
		if merged[0].Category != "Arrays" {
			t.Errorf("expected catalog category %q, got %q", "Arrays", merged[0].Category)
		}
		if merged[0].Name != "Two Sum" {
			t.Errorf("expected catalog name, got %q", merged[0].Name)
		}
		if merged[0].Status != models.StatusReview {
			t.Errorf("expected user status kept, got %q", merged[0].Status)
		}
	})

	t.Run("drops orphaned progress entries", func(t *testing.T) {
		saved := []models.UserProgress{
			{ProblemID: 99, Status: models.StatusCompleted, Notes: "bài đã bị xóa"},
		}

		merged := Reconcile(catalog, saved)
		for _, tp := range merged {
			if tp.ID == 99 {
				t.Fatalf("orphaned entry 99 must not appear in output")
			}
			if tp.Status != models.StatusNotStarted {
				t.Errorf("entry %d should be defaulted, got status %q", tp.ID, tp.Status)
			}
		}
	})

	t.Run("nil progress yields catalog with defaults", func(t *testing.T) {
		merged := Reconcile(catalog, nil)
		if len(merged) != len(catalog) {
			t.Fatalf("expected %d entries, got %d", len(catalog), len(merged))
		}
		for _, tp := range merged {
			if tp.Status != models.StatusNotStarted {
				t.Errorf("entry %d: expected %q, got %q", tp.ID, models.StatusNotStarted, tp.Status)
			}
			if tp.Notes != "" {
				t.Errorf("entry %d: expected empty notes, got %q", tp.ID, tp.Notes)
			}
		}
	})

	t.Run("blank status on matched entry defaults to Not Started", func(t *testing.T) {
		saved := []models.UserProgress{{ProblemID: 2, Status: "", Notes: "note giữ nguyên"}}

		merged := Reconcile(catalog, saved)
		if merged[2].Status != models.StatusNotStarted {
			t.Errorf("expected default status, got %q", merged[2].Status)
		}
		if merged[2].Notes != "note giữ nguyên" {
			t.Errorf("expected notes kept, got %q", merged[2].Notes)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		saved := []models.UserProgress{
			{ProblemID: 0, Status: models.StatusCompleted, Notes: "xong"},
			{ProblemID: 2, Status: models.StatusReview},
			{ProblemID: 50, Status: models.StatusCompleted}, // mồ côi
		}

		once := Reconcile(catalog, saved)
		twice := Reconcile(catalog, asProgress(once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("reconcile is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
		}
	})
}

func TestCountStatuses(t *testing.T) {
	list := []TrackedProblem{
		{Status: models.StatusCompleted},
		{Status: models.StatusCompleted},
		{Status: models.StatusReview},
		{Status: models.StatusNotStarted},
	}

	completed, review, total := CountStatuses(list)
	if completed != 2 || review != 1 || total != 4 {
		t.Errorf("expected (2, 1, 4), got (%d, %d, %d)", completed, review, total)
	}
}
