package listing

import (
	"sort"
	"time"

	"github.com/Soubhagyabehera/easyapply/internal/models"
)

// SortKey selects the ordering strategy for the job list.
type SortKey string

const (
	SortDefault  SortKey = "default"
	SortDeadline SortKey = "deadline"
	SortVacancy  SortKey = "vacancy"
	SortRecent   SortKey = "recent"
)

// ParseSortKey validates a caller-supplied sort key string.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortDefault, SortDeadline, SortVacancy, SortRecent:
		return SortKey(s), true
	case "":
		return SortDefault, true
	}
	return SortDefault, false
}

// Sort returns a reordered copy of jobs. The input is never mutated,
// nothing is dropped or duplicated, and ties keep their input order via
// an explicit index tie-break, so the ordering is total for every key.
//
// Missing values sort last under every key: a nil deadline behaves as
// the maximum future date, nil vacancies as zero (descending), and a
// nil posted date as the minimum date (descending).
func Sort(jobs []models.NormalizedJob, key SortKey) []models.NormalizedJob {
	out := make([]models.NormalizedJob, len(jobs))
	copy(out, jobs)
	if key == SortDefault || key == "" {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}

	less := lessFor(key)
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if c := less(jobs[i], jobs[j]); c != 0 {
			return c < 0
		}
		return i < j
	})

	for pos, i := range order {
		out[pos] = jobs[i]
	}
	return out
}

// lessFor returns a three-way comparator; 0 falls through to the index
// tie-break in Sort.
func lessFor(key SortKey) func(a, b models.NormalizedJob) int {
	switch key {
	case SortDeadline:
		return func(a, b models.NormalizedJob) int {
			return compareTime(deadlineOrMax(a), deadlineOrMax(b), true)
		}
	case SortVacancy:
		return func(a, b models.NormalizedJob) int {
			return vacancyOrZero(b) - vacancyOrZero(a)
		}
	case SortRecent:
		return func(a, b models.NormalizedJob) int {
			return compareTime(postedOrMin(a), postedOrMin(b), false)
		}
	default:
		return func(a, b models.NormalizedJob) int { return 0 }
	}
}

func compareTime(a, b time.Time, ascending bool) int {
	if a.Equal(b) {
		return 0
	}
	before := a.Before(b)
	if !ascending {
		before = !before
	}
	if before {
		return -1
	}
	return 1
}

func deadlineOrMax(job models.NormalizedJob) time.Time {
	if job.Deadline == nil {
		// Far-future sentinel so unknown deadlines sort last ascending.
		return time.Unix(1<<62, 0)
	}
	return *job.Deadline
}

func postedOrMin(job models.NormalizedJob) time.Time {
	if job.PostedDate == nil {
		return time.Time{}
	}
	return *job.PostedDate
}

func vacancyOrZero(job models.NormalizedJob) int {
	if job.Vacancies == nil {
		return 0
	}
	return *job.Vacancies
}
