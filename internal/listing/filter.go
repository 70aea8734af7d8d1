package listing

import (
	"strings"

	"github.com/Soubhagyabehera/easyapply/internal/models"
	"github.com/Soubhagyabehera/easyapply/internal/normalize"
)

// StatusTab is the job-status tab selection. It is wider than the
// record status: "active" also requires the deadline to be open, and
// "all" matches everything.
type StatusTab string

const (
	TabAll       StatusTab = "all"
	TabActive    StatusTab = "active"
	TabAdmitCard StatusTab = "admit-card"
	TabResults   StatusTab = "results"
)

// FilterState is one immutable snapshot of every user-selected
// predicate. The zero value imposes no constraint at all; an unset
// field is a wildcard. Setters on the listing service replace the whole
// value, they never mutate it in place.
type FilterState struct {
	Search          string            `json:"search,omitempty"`
	Category        models.CategoryID `json:"category,omitempty"`
	StatusTab       StatusTab         `json:"statusTab,omitempty"`
	Location        string            `json:"location,omitempty"`
	Qualification   string            `json:"qualification,omitempty"`
	JobType         string            `json:"jobType,omitempty"`
	EmploymentType  string            `json:"employmentType,omitempty"`
	Organization    string            `json:"organization,omitempty"`
	ApplicationMode string            `json:"applicationMode,omitempty"`
	ExamDate        string            `json:"examDate,omitempty"`

	// Bands are "min-max" strings against the configured boundaries,
	// e.g. "0-25000". A malformed band matches nothing.
	SalaryBand string `json:"salaryBand,omitempty"`
	AgeBand    string `json:"ageBand,omitempty"`
	FeeBand    string `json:"feeBand,omitempty"`
}

// IsZero reports whether the state constrains nothing.
func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

// Filter applies the conjunction of every set predicate. The result is
// always a subset of the input; bad data and malformed filter values
// degrade to "no match" and never panic.
func Filter(jobs []models.NormalizedJob, state FilterState) []models.NormalizedJob {
	out := make([]models.NormalizedJob, 0, len(jobs))
	for _, job := range jobs {
		if matches(job, state) {
			out = append(out, job)
		}
	}
	return out
}

func matches(job models.NormalizedJob, state FilterState) bool {
	return matchesSearch(job, state.Search) &&
		matchesCategory(job, state.Category) &&
		matchesStatusTab(job, state.StatusTab) &&
		containsFold(job.Location, state.Location) &&
		containsFold(job.Qualification, state.Qualification) &&
		equalsFold(job.JobType, state.JobType) &&
		equalsFold(job.EmploymentType, state.EmploymentType) &&
		containsFold(job.Organization, state.Organization) &&
		equalsFold(job.ApplicationMode, state.ApplicationMode) &&
		matchesExamDate(job, state.ExamDate) &&
		matchesBand(job.SalaryMin, job.SalaryMax, state.SalaryBand) &&
		matchesBand(job.AgeMin, job.AgeMax, state.AgeBand) &&
		matchesFeeBand(job, state.FeeBand)
}

// matchesSearch is the one predicate that is an OR across fields: the
// needle may appear in the title, the organization or the department.
func matchesSearch(job models.NormalizedJob, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Title), needle) ||
		strings.Contains(strings.ToLower(job.Organization), needle) ||
		strings.Contains(strings.ToLower(job.Department), needle)
}

func matchesCategory(job models.NormalizedJob, want models.CategoryID) bool {
	if want == models.CategoryUnknown {
		return true
	}
	// An uncategorized job never matches a specific category filter.
	return job.Category == want
}

func matchesStatusTab(job models.NormalizedJob, tab StatusTab) bool {
	switch tab {
	case "", TabAll:
		return true
	case TabActive:
		return job.Status == models.StatusActive && !job.Expired
	case TabAdmitCard:
		return job.Status == models.StatusAdmitCard
	case TabResults:
		return job.Status == models.StatusResults
	default:
		// Unknown tab values come from bad callers; treat as no match
		// rather than failing the whole pass.
		return false
	}
}

func matchesExamDate(job models.NormalizedJob, raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	if job.ExamDate == nil {
		return false
	}
	return job.ExamDate.Format("2006-01-02") == strings.TrimSpace(raw)
}

// matchesBand checks range overlap between the job's [lo, hi] value and
// a "min-max" band. A job lacking the field never matches a band
// filter: missing data is not a wildcard, unlike an unset filter.
func matchesBand(lo, hi *int, band string) bool {
	if strings.TrimSpace(band) == "" {
		return true
	}
	bandLo, bandHi, ok := parseBand(band)
	if !ok {
		return false
	}
	if lo == nil && hi == nil {
		return false
	}
	jobLo, jobHi := pointRange(lo, hi)
	return jobLo <= bandHi && jobHi >= bandLo
}

func matchesFeeBand(job models.NormalizedJob, band string) bool {
	if strings.TrimSpace(band) == "" {
		return true
	}
	bandLo, bandHi, ok := parseBand(band)
	if !ok {
		return false
	}
	return job.Fee >= bandLo && job.Fee <= bandHi
}

func parseBand(band string) (int, int, bool) {
	loRaw, hiRaw, found := strings.Cut(band, "-")
	if !found {
		return 0, 0, false
	}
	lo := normalize.ParseVacancies(loRaw)
	hi := normalize.ParseVacancies(hiRaw)
	if lo == nil || hi == nil || *lo > *hi {
		return 0, 0, false
	}
	return *lo, *hi, true
}

func pointRange(lo, hi *int) (int, int) {
	switch {
	case lo != nil && hi != nil:
		return *lo, *hi
	case lo != nil:
		return *lo, *lo
	default:
		return *hi, *hi
	}
}

func equalsFold(have, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(have), want)
}

func containsFold(have, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}
