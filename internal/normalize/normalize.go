// Package normalize reconciles the heterogeneous wire shape of a job
// record into the canonical read model. All alias precedence lives
// here, in one table-shaped pass; no other package looks at the legacy
// field names.
//
// Precedence per concept:
//
//	employer   organization > company
//	deadline   applicationDeadline > last_date > apply_last_date
//	posted     postedDate > created_at
//	apply URL  applyLink > official_website
package normalize

import (
	"strconv"
	"strings"

	"github.com/Soubhagyabehera/easyapply/internal/deadline"
	"github.com/Soubhagyabehera/easyapply/internal/models"
)

// Normalize resolves every aliased field of a raw record into exactly
// one canonical field. Missing or malformed values become explicit nil
// sentinels; the function never fails. Derived fields (category,
// expiry) are not attached here, that is the listing pipeline's job.
func Normalize(rec models.JobRecord) models.NormalizedJob {
	job := models.NormalizedJob{
		ID:              strings.TrimSpace(rec.ID),
		Title:           strings.TrimSpace(rec.Title),
		Organization:    firstNonEmpty(rec.Organization, rec.Company),
		Department:      strings.TrimSpace(rec.Department),
		Location:        strings.TrimSpace(rec.Location),
		Qualification:   strings.TrimSpace(rec.Qualification),
		JobType:         strings.TrimSpace(rec.JobType),
		EmploymentType:  strings.TrimSpace(rec.EmploymentType),
		ApplicationMode: strings.TrimSpace(rec.ApplicationMode),
		Description:     strings.TrimSpace(rec.Description),
		Deadline:        deadline.Parse(firstNonEmpty(rec.ApplicationDeadline, rec.LastDate, rec.ApplyLastDate)),
		PostedDate:      deadline.Parse(firstNonEmpty(rec.PostedDate, rec.CreatedAt)),
		ExamDate:        deadline.Parse(rec.ExamDate),
		Vacancies:       ParseVacancies(rec.Vacancies.String()),
		Fee:             parseFee(rec.Fee.String()),
		Status:          normalizeStatus(rec.Status),
		ApplyLink:       normalizeURL(firstNonEmpty(rec.ApplyLink, rec.OfficialWebsite)),
	}

	job.SalaryMin, job.SalaryMax = ParseRange(rec.Salary.String())
	job.AgeMin, job.AgeMax = ParseRange(rec.AgeLimit.String())

	return job
}

// Record renders a normalized job back into its canonical wire shape,
// with only the preferred alias of each concept populated. Used when
// posting manual jobs and when checking that normalization is a no-op
// on already-canonical records.
func Record(job models.NormalizedJob) models.JobRecord {
	rec := models.JobRecord{
		ID:              job.ID,
		Title:           job.Title,
		Organization:    job.Organization,
		Department:      job.Department,
		Location:        job.Location,
		Qualification:   job.Qualification,
		JobType:         job.JobType,
		EmploymentType:  job.EmploymentType,
		ApplicationMode: job.ApplicationMode,
		Description:     job.Description,
		Status:          job.Status,
		ApplyLink:       job.ApplyLink,
	}
	if job.Deadline != nil {
		rec.ApplicationDeadline = job.Deadline.Format("2006-01-02")
	}
	if job.PostedDate != nil {
		rec.PostedDate = job.PostedDate.Format("2006-01-02")
	}
	if job.ExamDate != nil {
		rec.ExamDate = job.ExamDate.Format("2006-01-02")
	}
	if job.Vacancies != nil {
		rec.Vacancies = models.FlexString(strconv.Itoa(*job.Vacancies))
	}
	if job.SalaryMin != nil || job.SalaryMax != nil {
		rec.Salary = models.FlexString(formatRange(job.SalaryMin, job.SalaryMax))
	}
	if job.AgeMin != nil || job.AgeMax != nil {
		rec.AgeLimit = models.FlexString(formatRange(job.AgeMin, job.AgeMax))
	}
	if job.Fee != 0 {
		rec.Fee = models.FlexString(strconv.Itoa(job.Fee))
	}
	return rec
}

// ParseVacancies extracts a base-10 count from strings like "2,000" or
// "2000 posts". No digits at all means the count is unknown, which is
// distinct from an announced zero.
func ParseVacancies(raw string) *int {
	digits := keepDigits(raw)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// ParseRange reads salary- and age-style values: either a single number
// ("25000") or a dash-separated pair ("18-27", "₹25,000 - ₹81,000").
// A single number is returned as both bounds.
func ParseRange(raw string) (*int, *int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if lo, hi, found := strings.Cut(raw, "-"); found {
		return ParseVacancies(lo), ParseVacancies(hi)
	}
	n := ParseVacancies(raw)
	return n, n
}

func formatRange(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil && *lo != *hi:
		return strconv.Itoa(*lo) + "-" + strconv.Itoa(*hi)
	case lo != nil:
		return strconv.Itoa(*lo)
	case hi != nil:
		return strconv.Itoa(*hi)
	}
	return ""
}

func parseFee(raw string) int {
	// Absent fee means the application is free.
	if n := ParseVacancies(raw); n != nil {
		return *n
	}
	return 0
}

func normalizeStatus(s models.Status) models.Status {
	switch s {
	case models.StatusAdmitCard, models.StatusResults:
		return s
	default:
		// Absence (and anything unrecognized) implies an open listing.
		return models.StatusActive
	}
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
