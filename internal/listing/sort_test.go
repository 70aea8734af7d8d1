package listing_test

import (
	"testing"
	"time"

	"github.com/Soubhagyabehera/easyapply/internal/listing"
	"github.com/Soubhagyabehera/easyapply/internal/models"
)

func dayPtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func titles(jobs []models.NormalizedJob) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func assertOrder(t *testing.T, got []models.NormalizedJob, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d jobs, want %d: %v", len(got), len(want), titles(got))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}
}

func TestSort_DefaultPreservesInputOrder(t *testing.T) {
	jobs := []models.NormalizedJob{job("C"), job("A"), job("B")}
	assertOrder(t, listing.Sort(jobs, listing.SortDefault), "C", "A", "B")
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	jobs := []models.NormalizedJob{
		job("Late", func(j *models.NormalizedJob) { j.Deadline = dayPtr("2026-12-01") }),
		job("Soon", func(j *models.NormalizedJob) { j.Deadline = dayPtr("2026-09-01") }),
	}

	_ = listing.Sort(jobs, listing.SortDeadline)

	if jobs[0].Title != "Late" || jobs[1].Title != "Soon" {
		t.Fatalf("Sort mutated its input: %v", titles(jobs))
	}
}

func TestSort_PreservesCardinality(t *testing.T) {
	jobs := []models.NormalizedJob{job("A"), job("B"), job("C"), job("D")}
	for _, key := range []listing.SortKey{listing.SortDefault, listing.SortDeadline, listing.SortVacancy, listing.SortRecent} {
		got := listing.Sort(jobs, key)
		if len(got) != len(jobs) {
			t.Errorf("Sort(%s) returned %d jobs, want %d", key, len(got), len(jobs))
		}
		seen := map[string]int{}
		for _, j := range got {
			seen[j.Title]++
		}
		for _, j := range jobs {
			if seen[j.Title] != 1 {
				t.Errorf("Sort(%s) duplicated or dropped %q", key, j.Title)
			}
		}
	}
}

func TestSort_DeadlineAscendingNilLast(t *testing.T) {
	jobs := []models.NormalizedJob{
		job("NoDeadline"),
		job("Late", func(j *models.NormalizedJob) { j.Deadline = dayPtr("2026-12-01") }),
		job("Soon", func(j *models.NormalizedJob) { j.Deadline = dayPtr("2026-09-01") }),
	}
	assertOrder(t, listing.Sort(jobs, listing.SortDeadline), "Soon", "Late", "NoDeadline")
}

// Scenario: vacancies parsed from "500", null, "1,200".
func TestSort_VacancyDescendingNilLast(t *testing.T) {
	jobs := []models.NormalizedJob{
		job("Five hundred", func(j *models.NormalizedJob) { j.Vacancies = intPtr(500) }),
		job("Unknown"),
		job("Twelve hundred", func(j *models.NormalizedJob) { j.Vacancies = intPtr(1200) }),
	}
	assertOrder(t, listing.Sort(jobs, listing.SortVacancy), "Twelve hundred", "Five hundred", "Unknown")
}

func TestSort_RecentDescendingNilLast(t *testing.T) {
	jobs := []models.NormalizedJob{
		job("Old", func(j *models.NormalizedJob) { j.PostedDate = dayPtr("2026-01-10") }),
		job("Undated"),
		job("Fresh", func(j *models.NormalizedJob) { j.PostedDate = dayPtr("2026-08-20") }),
	}
	assertOrder(t, listing.Sort(jobs, listing.SortRecent), "Fresh", "Old", "Undated")
}

// Equal keys keep their input order under every sort key.
func TestSort_Stability(t *testing.T) {
	sameDay := dayPtr("2026-09-01")
	jobs := []models.NormalizedJob{
		job("First", func(j *models.NormalizedJob) { j.Deadline = sameDay; j.Vacancies = intPtr(10) }),
		job("Second", func(j *models.NormalizedJob) { j.Deadline = sameDay; j.Vacancies = intPtr(10) }),
		job("Third", func(j *models.NormalizedJob) { j.Deadline = sameDay; j.Vacancies = intPtr(10) }),
	}
	for _, key := range []listing.SortKey{listing.SortDefault, listing.SortDeadline, listing.SortVacancy, listing.SortRecent} {
		assertOrder(t, listing.Sort(jobs, key), "First", "Second", "Third")
	}
}

func TestParseSortKey(t *testing.T) {
	if key, ok := listing.ParseSortKey(""); !ok || key != listing.SortDefault {
		t.Errorf("ParseSortKey(\"\") = %q, %v, want default, true", key, ok)
	}
	if key, ok := listing.ParseSortKey("vacancy"); !ok || key != listing.SortVacancy {
		t.Errorf("ParseSortKey(vacancy) = %q, %v", key, ok)
	}
	if _, ok := listing.ParseSortKey("alphabetical"); ok {
		t.Error("ParseSortKey(alphabetical) accepted an unknown key")
	}
}
