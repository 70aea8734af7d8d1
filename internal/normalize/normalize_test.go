package normalize_test

import (
	"reflect"
	"testing"

	"github.com/Soubhagyabehera/easyapply/internal/models"
	"github.com/Soubhagyabehera/easyapply/internal/normalize"
)

func TestNormalize_AliasPrecedence(t *testing.T) {
	rec := models.JobRecord{
		Title:               "Probationary Officer",
		Organization:        "State Bank of India",
		Company:             "SBI Ltd",
		ApplicationDeadline: "2026-09-15",
		LastDate:            "2026-09-10",
		ApplyLastDate:       "2026-09-05",
		PostedDate:          "2026-08-01",
		CreatedAt:           "2026-07-01",
		ApplyLink:           "https://sbi.example/apply",
		OfficialWebsite:     "sbi.example",
	}

	job := normalize.Normalize(rec)

	if job.Organization != "State Bank of India" {
		t.Errorf("Organization = %q, want organization alias to win over company", job.Organization)
	}
	if job.Deadline == nil || job.Deadline.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("Deadline = %v, want applicationDeadline alias to win", job.Deadline)
	}
	if job.PostedDate == nil || job.PostedDate.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("PostedDate = %v, want postedDate alias to win", job.PostedDate)
	}
	if job.ApplyLink != "https://sbi.example/apply" {
		t.Errorf("ApplyLink = %q, want applyLink alias to win", job.ApplyLink)
	}
}

func TestNormalize_AliasFallbacks(t *testing.T) {
	rec := models.JobRecord{
		Title:         "Clerk",
		Company:       "IBPS",
		ApplyLastDate: "2026-10-01",
		CreatedAt:     "2026-08-20",
	}

	job := normalize.Normalize(rec)

	if job.Organization != "IBPS" {
		t.Errorf("Organization = %q, want fallback to company", job.Organization)
	}
	if job.Deadline == nil || job.Deadline.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("Deadline = %v, want fallback to apply_last_date", job.Deadline)
	}
	if job.PostedDate == nil || job.PostedDate.Format("2006-01-02") != "2026-08-20" {
		t.Errorf("PostedDate = %v, want fallback to created_at", job.PostedDate)
	}
}

func TestParseVacancies(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"2,000 posts", intPtr(2000)},
		{"2000", intPtr(2000)},
		{"0", intPtr(0)},
		{"N/A", nil},
		{"", nil},
		{"tba", nil},
	}
	for _, c := range cases {
		got := normalize.ParseVacancies(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("ParseVacancies(%q) = %d, want nil", c.in, *got)
		case c.want != nil && got == nil:
			t.Errorf("ParseVacancies(%q) = nil, want %d", c.in, *c.want)
		case c.want != nil && *got != *c.want:
			t.Errorf("ParseVacancies(%q) = %d, want %d", c.in, *got, *c.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	lo, hi := normalize.ParseRange("₹25,000 - ₹81,000")
	if lo == nil || hi == nil || *lo != 25000 || *hi != 81000 {
		t.Fatalf("ParseRange(₹25,000 - ₹81,000) = %v, %v, want 25000, 81000", lo, hi)
	}

	lo, hi = normalize.ParseRange("18-27")
	if lo == nil || hi == nil || *lo != 18 || *hi != 27 {
		t.Fatalf("ParseRange(18-27) = %v, %v, want 18, 27", lo, hi)
	}

	lo, hi = normalize.ParseRange("35000")
	if lo == nil || hi == nil || *lo != 35000 || *hi != 35000 {
		t.Fatalf("ParseRange(35000) = %v, %v, want same bound twice", lo, hi)
	}

	lo, hi = normalize.ParseRange("")
	if lo != nil || hi != nil {
		t.Fatalf("ParseRange(\"\") = %v, %v, want nil, nil", lo, hi)
	}
}

func TestNormalize_MalformedDateBecomesNil(t *testing.T) {
	job := normalize.Normalize(models.JobRecord{
		Title:               "Junior Engineer",
		ApplicationDeadline: "soon",
	})
	if job.Deadline != nil {
		t.Errorf("Deadline = %v, want nil for malformed date", job.Deadline)
	}
}

func TestNormalize_StatusDefaultsToActive(t *testing.T) {
	job := normalize.Normalize(models.JobRecord{Title: "Constable"})
	if job.Status != models.StatusActive {
		t.Errorf("Status = %q, want missing status to read as active", job.Status)
	}

	job = normalize.Normalize(models.JobRecord{Title: "Constable", Status: models.StatusResults})
	if job.Status != models.StatusResults {
		t.Errorf("Status = %q, want results preserved", job.Status)
	}
}

func TestNormalize_URLSchemeDefaulted(t *testing.T) {
	job := normalize.Normalize(models.JobRecord{Title: "Clerk", OfficialWebsite: "example.gov.in/apply"})
	if job.ApplyLink != "https://example.gov.in/apply" {
		t.Errorf("ApplyLink = %q, want https scheme prepended", job.ApplyLink)
	}
}

// Normalizing an already-canonical record changes nothing.
func TestNormalize_Idempotent(t *testing.T) {
	raw := models.JobRecord{
		Title:               "Probationary Officer",
		Company:             "State Bank of India",
		Location:            "Mumbai",
		ApplyLastDate:       "2026-09-15",
		CreatedAt:           "2026-08-01",
		Vacancies:           "2,000 posts",
		Salary:              "₹25,000 - ₹81,000",
		AgeLimit:            "21-30",
		Fee:                 "750",
		OfficialWebsite:     "sbi.example",
		ApplicationDeadline: "",
	}

	once := normalize.Normalize(raw)
	twice := normalize.Normalize(normalize.Record(once))

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func intPtr(n int) *int { return &n }
