package services

import (
	"testing"
	"time"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

func TestParseCatalogCSV(t *testing.T) {
	t.Run("headered file with difficulty column", func(t *testing.T) {
		raw := "Problem Category,Problem Name,Problem Link,Difficulty\n" +
			"Arrays,Two Sum,https://example.com/two-sum,Easy\n" +
			"Graphs,Clone Graph,,Medium\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if len(parsed.Problems) != 2 {
			t.Fatalf("expected 2 problems, got %d", len(parsed.Problems))
		}
		if parsed.Problems[0].DifficultyClass != models.DifficultyEasy {
			t.Errorf("expected easy, got %q", parsed.Problems[0].DifficultyClass)
		}
		if parsed.Problems[1].Name != "Clone Graph" || parsed.Problems[1].DifficultyClass != models.DifficultyMedium {
			t.Errorf("unexpected second row: %+v", parsed.Problems[1])
		}
	})

	t.Run("headerless fallback maps columns positionally", func(t *testing.T) {
		// dòng đầu không chứa token nào được nhận diện -> coi như header lạ,
		// các dòng sau ánh xạ theo vị trí (category, name, difficulty, link)
		headerless := "col1,col2,col3,col4\n" +
			"Arrays,Two Sum,Easy,https://example.com/two-sum\n" +
			"DP,Edit Distance,Hard,\n"
		headered := "Problem Category,Problem Name,Problem Link,Difficulty\n" +
			"Arrays,Two Sum,https://example.com/two-sum,Easy\n" +
			"DP,Edit Distance,,Hard\n"

		a, err := ParseCatalogCSV(headerless)
		if err != nil {
			t.Fatalf("headerless parse failed: %v", err)
		}
		b, err := ParseCatalogCSV(headered)
		if err != nil {
			t.Fatalf("headered parse failed: %v", err)
		}
		if len(a.Problems) != len(b.Problems) {
			t.Fatalf("row count mismatch: %d vs %d", len(a.Problems), len(b.Problems))
		}
		for i := range a.Problems {
			if a.Problems[i].DifficultyClass != b.Problems[i].DifficultyClass {
				t.Errorf("row %d: difficulty %q vs %q", i, a.Problems[i].DifficultyClass, b.Problems[i].DifficultyClass)
			}
			if a.Problems[i].Name != b.Problems[i].Name {
				t.Errorf("row %d: name %q vs %q", i, a.Problems[i].Name, b.Problems[i].Name)
			}
		}
	})

	t.Run("headerless difficulty falls back to category", func(t *testing.T) {
		raw := "aaa,bbb,ccc,ddd\n" +
			"Hard: Light Red,Word Ladder,???,https://example.com/word-ladder\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if parsed.Problems[0].DifficultyClass != models.DifficultyHard {
			t.Errorf("expected hard from category, got %q", parsed.Problems[0].DifficultyClass)
		}
	})

	t.Run("difficulty inferred from category keywords", func(t *testing.T) {
		raw := "Problem Category,Problem Name\n" +
			"Very Easy: Light Blue,Print Hello\n" +
			"Green,FizzBuzz\n" +
			"Level 3,Spiral Matrix\n" +
			"Trie,Word Search II\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		want := []models.DifficultyClass{
			models.DifficultyVeryEasy,
			models.DifficultyEasy,
			models.DifficultyMedium,
			models.DifficultyMedium, // không nhận diện được -> mặc định
		}
		for i, w := range want {
			if parsed.Problems[i].DifficultyClass != w {
				t.Errorf("row %d: expected %q, got %q", i, w, parsed.Problems[i].DifficultyClass)
			}
		}
	})

	t.Run("direct mention wins over color", func(t *testing.T) {
		raw := "Problem Category,Problem Name\n" +
			"Medium: Yellow,Rotate Image\n" +
			"Easy: Red,Valid Anagram\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if parsed.Problems[0].DifficultyClass != models.DifficultyMedium {
			t.Errorf("expected medium over yellow, got %q", parsed.Problems[0].DifficultyClass)
		}
		if parsed.Problems[1].DifficultyClass != models.DifficultyEasy {
			t.Errorf("expected easy over red, got %q", parsed.Problems[1].DifficultyClass)
		}
	})

	t.Run("any column containing difficult is consulted", func(t *testing.T) {
		raw := "Problem Category,Problem Name,Độ khó (difficulty)\n" +
			"Trie,Word Break,hard\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if parsed.Problems[0].DifficultyClass != models.DifficultyHard {
			t.Errorf("expected hard from fuzzy difficulty column, got %q", parsed.Problems[0].DifficultyClass)
		}
	})

	t.Run("rows without a name are dropped and counted", func(t *testing.T) {
		raw := "Problem Category,Problem Name,Problem Link\n" +
			"Arrays,Two Sum,\n" +
			"Arrays,   ,\n" +
			"Graphs,,\n"

		parsed, err := ParseCatalogCSV(raw)
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if len(parsed.Problems) != 1 {
			t.Errorf("expected 1 surviving row, got %d", len(parsed.Problems))
		}
		if parsed.Dropped != 2 {
			t.Errorf("expected 2 dropped rows, got %d", parsed.Dropped)
		}
	})

	t.Run("malformed input returns error and no result", func(t *testing.T) {
		parsed, err := ParseCatalogCSV("Problem Name\n\"unterminated")
		if err == nil {
			t.Fatalf("expected parse error, got %+v", parsed)
		}
	})

	t.Run("empty input yields empty catalog", func(t *testing.T) {
		parsed, err := ParseCatalogCSV("")
		if err != nil {
			t.Fatalf("ParseCatalogCSV failed: %v", err)
		}
		if len(parsed.Problems) != 0 || parsed.Dropped != 0 {
			t.Errorf("expected empty result, got %+v", parsed)
		}
	})
}

func TestStampCatalog(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("replace mode numbers from zero", func(t *testing.T) {
		problems := []TrackedProblem{
			{Problem: models.Problem{Name: "A"}},
			{Problem: models.Problem{Name: "B"}},
		}
		StampCatalog(problems, 0, now)
		if problems[0].ID != 0 || problems[1].ID != 1 {
			t.Errorf("expected ids 0,1 got %d,%d", problems[0].ID, problems[1].ID)
		}
		if !problems[0].LastUpdated.Equal(now) {
			t.Errorf("expected timestamp stamped, got %v", problems[0].LastUpdated)
		}
	})

	t.Run("append mode continues after max existing id", func(t *testing.T) {
		existing := []models.Problem{{ID: 3}, {ID: 7}, {ID: 5}}
		if next := NextProblemID(existing); next != 8 {
			t.Fatalf("expected next id 8, got %d", next)
		}

		problems := []TrackedProblem{{Problem: models.Problem{Name: "C"}}}
		StampCatalog(problems, NextProblemID(existing), now)
		if problems[0].ID != 8 {
			t.Errorf("expected id 8, got %d", problems[0].ID)
		}
	})

	t.Run("missing difficulty defaults to medium", func(t *testing.T) {
		problems := []TrackedProblem{{Problem: models.Problem{Name: "D"}}}
		StampCatalog(problems, 0, now)
		if problems[0].DifficultyClass != models.DifficultyMedium {
			t.Errorf("expected medium default, got %q", problems[0].DifficultyClass)
		}
	})
}

func TestExportRoundTrip(t *testing.T) {
	list := []TrackedProblem{
		{
			Problem: models.Problem{ID: 0, Category: "Arrays", Name: "Two Sum", Link: "https://example.com/two-sum"},
			Status:  models.StatusCompleted,
			Notes:   "hash map, O(n)",
		},
		{
			Problem: models.Problem{ID: 1, Category: "Strings", Name: `Bài "khó", nhiều dấu phẩy`, Link: ""},
			Status:  models.StatusReview,
			Notes:   "ghi chú có\nxuống dòng",
		},
	}

	out, err := ExportCatalogCSV(list)
	if err != nil {
		t.Fatalf("ExportCatalogCSV failed: %v", err)
	}

	parsed, err := ParseCatalogCSV(out)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(parsed.Problems) != len(list) {
		t.Fatalf("expected %d rows back, got %d", len(list), len(parsed.Problems))
	}
	for i, want := range list {
		got := parsed.Problems[i]
		if got.Category != want.Category || got.Name != want.Name || got.Link != want.Link {
			t.Errorf("row %d: catalog fields not recovered: %+v", i, got)
		}
		if got.Status != want.Status {
			t.Errorf("row %d: expected status %q, got %q", i, want.Status, got.Status)
		}
		if got.Notes != want.Notes {
			t.Errorf("row %d: expected notes %q, got %q", i, want.Notes, got.Notes)
		}
	}
}
