package services

import (
	"testing"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

func trackedList() []TrackedProblem {
	return []TrackedProblem{
		{Problem: models.Problem{ID: 0, Category: "Arrays", Name: "Two Sum", DifficultyClass: models.DifficultyEasy}, Status: models.StatusCompleted, Notes: "hash map"},
		{Problem: models.Problem{ID: 1, Category: "Arrays", Name: "Rotate Image", DifficultyClass: models.DifficultyMedium}, Status: models.StatusNotStarted},
		{Problem: models.Problem{ID: 2, Category: "Graphs", Name: "Clone Graph", DifficultyClass: models.DifficultyMedium}, Status: models.StatusCompleted},
		{Problem: models.Problem{ID: 3, Category: "DP", Name: "Edit Distance", DifficultyClass: models.DifficultyHard}, Status: models.StatusReview, Notes: "xem lại công thức"},
	}
}

func idsOf(list []TrackedProblem) []int {
	ids := make([]int, len(list))
	for i, tp := range list {
		ids[i] = tp.ID
	}
	return ids
}

func TestFilterProblems(t *testing.T) {
	list := trackedList()

	t.Run("search matches name, category and notes", func(t *testing.T) {
		if got := FilterProblems(list, ProblemFilter{Search: "two"}); len(got) != 1 || got[0].ID != 0 {
			t.Errorf("name search: got %v", idsOf(got))
		}
		if got := FilterProblems(list, ProblemFilter{Search: "graph"}); len(got) != 1 || got[0].ID != 2 {
			t.Errorf("category search: got %v", idsOf(got))
		}
		if got := FilterProblems(list, ProblemFilter{Search: "công thức"}); len(got) != 1 || got[0].ID != 3 {
			t.Errorf("notes search: got %v", idsOf(got))
		}
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		if got := FilterProblems(list, ProblemFilter{}); len(got) != len(list) {
			t.Errorf("expected %d entries, got %d", len(list), len(got))
		}
	})

	t.Run("filters compose as AND regardless of order", func(t *testing.T) {
		// áp hai filter trong một lần
		combined := FilterProblems(list, ProblemFilter{Category: "Arrays", Status: models.StatusCompleted})

		// áp tuần tự theo cả hai thứ tự
		seq1 := FilterProblems(FilterProblems(list, ProblemFilter{Category: "Arrays"}), ProblemFilter{Status: models.StatusCompleted})
		seq2 := FilterProblems(FilterProblems(list, ProblemFilter{Status: models.StatusCompleted}), ProblemFilter{Category: "Arrays"})

		for _, got := range [][]TrackedProblem{combined, seq1, seq2} {
			if len(got) != 1 || got[0].ID != 0 {
				t.Errorf("expected only problem 0, got %v", idsOf(got))
			}
		}
	})

	t.Run("difficulty filter is exact match", func(t *testing.T) {
		got := FilterProblems(list, ProblemFilter{Difficulty: models.DifficultyMedium})
		if len(got) != 2 {
			t.Errorf("expected 2 medium problems, got %v", idsOf(got))
		}
	})
}

func TestGroupByDifficulty(t *testing.T) {
	t.Run("partitions into the four fixed buckets", func(t *testing.T) {
		grouped := GroupByDifficulty(trackedList())
		if len(grouped) != 4 {
			t.Fatalf("expected 4 buckets, got %d", len(grouped))
		}
		if n := len(grouped[models.DifficultyMedium]); n != 2 {
			t.Errorf("expected 2 medium problems, got %d", n)
		}
		if n := len(grouped[models.DifficultyVeryEasy]); n != 0 {
			t.Errorf("expected empty very-easy bucket, got %d", n)
		}
	})

	t.Run("buckets are sorted by name", func(t *testing.T) {
		grouped := GroupByDifficulty(trackedList())
		medium := grouped[models.DifficultyMedium]
		if medium[0].Name != "Clone Graph" || medium[1].Name != "Rotate Image" {
			t.Errorf("bucket not sorted: %q, %q", medium[0].Name, medium[1].Name)
		}
	})

	t.Run("unknown difficulty lands in medium without mutation", func(t *testing.T) {
		list := []TrackedProblem{
			{Problem: models.Problem{ID: 9, Name: "Mystery", DifficultyClass: "unknown"}},
		}
		grouped := GroupByDifficulty(list)
		if len(grouped[models.DifficultyMedium]) != 1 {
			t.Fatalf("expected unknown difficulty grouped as medium")
		}
		// dữ liệu gốc không bị sửa
		if list[0].DifficultyClass != "unknown" {
			t.Errorf("input mutated: %q", list[0].DifficultyClass)
		}
		if grouped[models.DifficultyMedium][0].DifficultyClass != "unknown" {
			t.Errorf("grouped copy should keep original class, got %q", grouped[models.DifficultyMedium][0].DifficultyClass)
		}
	})
}
