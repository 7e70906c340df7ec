// Package models holds the survey response row type and the fixed
// question vocabulary shared by handlers, workbook IO and the CLI.
package models

import (
	"sort"
	"strings"
)

// Q1Options is the fixed vocabulary of the multi-select awareness question.
// A stored q1 cell holds zero or more of these joined with ", ".
var Q1Options = []string{
	"1. SEAH awareness",
	"2. Disciplinary action",
	"5. SemaUsikike",
	"6. SEAH engagements",
	"7. Risk assessment",
	"8. MD Communications",
	"9. Visible welfare",
}

// Columns lists the survey_responses columns written on upload, in insert order.
var Columns = []string{
	"phone_number",
	"efd",
	"job_category",
	"employment_status",
	"sex",
	"status",
	"q1",
	"q2",
	"q3",
}

// SurveyResponse is one respondent row. Nil fields map to SQL NULL.
type SurveyResponse struct {
	ID               int64
	PhoneNumber      *string
	EFD              *string
	JobCategory      *string
	EmploymentStatus *string
	Sex              *string
	Status           *string
	Q1               *string
	Q2               *string
	Q3               *string
}

// Values returns the insertable column values in Columns order.
func (r *SurveyResponse) Values() []interface{} {
	return []interface{}{
		r.PhoneNumber, r.EFD, r.JobCategory, r.EmploymentStatus,
		r.Sex, r.Status, r.Q1, r.Q2, r.Q3,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// identityKey is the tuple used for upload ordering and duplicate detection.
func (r *SurveyResponse) identityKey() string {
	return strings.Join([]string{
		deref(r.PhoneNumber), deref(r.EFD), deref(r.JobCategory), deref(r.Sex),
	}, "\x1f")
}

// SortByIdentity orders rows by (phone_number, efd, job_category, sex),
// matching the ordering applied before each upload.
func SortByIdentity(rows []SurveyResponse) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].identityKey() < rows[j].identityKey()
	})
}

// MarkDuplicates flags every member of a group sharing the same
// (phone_number, efd, job_category, sex) tuple, not just the repeats.
func MarkDuplicates(rows []SurveyResponse) []bool {
	counts := make(map[string]int, len(rows))
	for i := range rows {
		counts[rows[i].identityKey()]++
	}

	flags := make([]bool, len(rows))
	for i := range rows {
		flags[i] = counts[rows[i].identityKey()] > 1
	}
	return flags
}

// SplitQ1 breaks a stored q1 cell into its selected options.
func SplitQ1(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, ", ")
}
