package models

import (
	"encoding/json"
	"time"
)

// Status is the application-phase tag carried by a job posting. The
// backend omits the field for ordinary open listings, so an empty value
// is read as StatusActive during normalization.
type Status string

const (
	StatusActive    Status = "active"
	StatusAdmitCard Status = "admit-card"
	StatusResults   Status = "results"
)

// CategoryID identifies the coarse job category inferred from the
// employer text. CategoryUnknown means the classifier found no match;
// it is never silently replaced by a default category.
type CategoryID string

const (
	CategoryUnknown    CategoryID = ""
	CategoryBanking    CategoryID = "banking"
	CategoryRailway    CategoryID = "railway"
	CategorySSC        CategoryID = "ssc"
	CategoryUPSC       CategoryID = "upsc"
	CategoryDefense    CategoryID = "defense"
	CategoryTeaching   CategoryID = "teaching"
	CategoryPolice     CategoryID = "police"
	CategoryHealthcare CategoryID = "healthcare"
)

// FlexString decodes either a JSON string or a bare JSON number into
// its text form. Several backend fields (vacancies, fee, salary) arrive
// as one or the other depending on which legacy writer produced the
// record.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string { return string(f) }

// JobRecord is the raw wire shape of a job posting as returned by the
// listing backend. Every field except Title is optional, and several
// concepts appear under more than one legacy name; the normalizer is
// the only place that resolves the aliases.
type JobRecord struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`

	// Employer name aliases, organization preferred.
	Organization string `json:"organization,omitempty"`
	Company      string `json:"company,omitempty"`

	Department      string `json:"department,omitempty"`
	Location        string `json:"location,omitempty"`
	Qualification   string `json:"qualification,omitempty"`
	JobType         string `json:"jobType,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty"`
	ApplicationMode string `json:"applicationMode,omitempty"`
	Description     string `json:"description,omitempty"`

	// Deadline aliases, applicationDeadline preferred.
	ApplicationDeadline string `json:"applicationDeadline,omitempty"`
	LastDate            string `json:"last_date,omitempty"`
	ApplyLastDate       string `json:"apply_last_date,omitempty"`

	// Posting-date aliases, postedDate preferred.
	PostedDate string `json:"postedDate,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`

	ExamDate string `json:"examDate,omitempty"`

	Vacancies FlexString `json:"vacancies,omitempty"`
	Salary    FlexString `json:"salary,omitempty"`
	AgeLimit  FlexString `json:"ageLimit,omitempty"`
	Fee       FlexString `json:"fee,omitempty"`

	Status Status `json:"status,omitempty"`

	// Apply-URL aliases, applyLink preferred.
	ApplyLink       string `json:"applyLink,omitempty"`
	OfficialWebsite string `json:"official_website,omitempty"`
}

// JobRecordList is a cacheable collection of raw records.
type JobRecordList []JobRecord

func (l JobRecordList) MarshalBinary() ([]byte, error) {
	return json.Marshal(l)
}

func (l *JobRecordList) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, l)
}

func (r JobRecord) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *JobRecord) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}

// NormalizedJob is the canonical alias-resolved read model used by the
// filter, sort and pagination pipeline. Unknown values are explicit nil
// sentinels, never guessed defaults. Values are immutable once built:
// derived fields are attached by value when the collection is applied,
// never mutated in place afterwards.
type NormalizedJob struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Organization    string     `json:"organization"`
	Department      string     `json:"department,omitempty"`
	Location        string     `json:"location,omitempty"`
	Qualification   string     `json:"qualification,omitempty"`
	JobType         string     `json:"jobType,omitempty"`
	EmploymentType  string     `json:"employmentType,omitempty"`
	ApplicationMode string     `json:"applicationMode,omitempty"`
	Description     string     `json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	PostedDate      *time.Time `json:"postedDate,omitempty"`
	ExamDate        *time.Time `json:"examDate,omitempty"`
	Vacancies       *int       `json:"vacancies,omitempty"`
	SalaryMin       *int       `json:"salaryMin,omitempty"`
	SalaryMax       *int       `json:"salaryMax,omitempty"`
	AgeMin          *int       `json:"ageMin,omitempty"`
	AgeMax          *int       `json:"ageMax,omitempty"`
	Fee             int        `json:"fee"`
	Status          Status     `json:"status"`
	ApplyLink       string     `json:"applyLink,omitempty"`

	// Derived fields, pure functions of the record and the evaluation
	// instant.
	Category      CategoryID `json:"category,omitempty"`
	Expired       bool       `json:"expired"`
	DaysRemaining *int       `json:"daysRemaining,omitempty"`
}
