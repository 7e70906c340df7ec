package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func row(phone, efd, job, sex string) SurveyResponse {
	return SurveyResponse{
		PhoneNumber: strPtr(phone),
		EFD:         strPtr(efd),
		JobCategory: strPtr(job),
		Sex:         strPtr(sex),
	}
}

func TestSortByIdentityOrdersRows(t *testing.T) {
	rows := []SurveyResponse{
		row("255700000002", "B", "Field", "F"),
		row("255700000001", "A", "Office", "M"),
		row("255700000001", "A", "Field", "M"),
	}

	SortByIdentity(rows)

	assert.Equal(t, "Field", *rows[0].JobCategory)
	assert.Equal(t, "Office", *rows[1].JobCategory)
	assert.Equal(t, "255700000002", *rows[2].PhoneNumber)
}

func TestSortByIdentityHandlesNilFields(t *testing.T) {
	rows := []SurveyResponse{
		row("255700000001", "A", "Field", "M"),
		{}, // all nil sorts first
	}

	SortByIdentity(rows)

	assert.Nil(t, rows[0].PhoneNumber)
	assert.NotNil(t, rows[1].PhoneNumber)
}

func TestMarkDuplicatesFlagsWholeGroup(t *testing.T) {
	rows := []SurveyResponse{
		row("255700000001", "A", "Field", "M"),
		row("255700000002", "B", "Office", "F"),
		row("255700000001", "A", "Field", "M"),
	}

	flags := MarkDuplicates(rows)

	require.Len(t, flags, 3)
	assert.True(t, flags[0], "first member of the duplicate group is flagged too")
	assert.False(t, flags[1])
	assert.True(t, flags[2])
}

func TestMarkDuplicatesIgnoresNonIdentityColumns(t *testing.T) {
	a := row("255700000001", "A", "Field", "M")
	a.Status = strPtr("Active")
	b := row("255700000001", "A", "Field", "M")
	b.Status = strPtr("Inactive")

	flags := MarkDuplicates([]SurveyResponse{a, b})

	assert.True(t, flags[0])
	assert.True(t, flags[1])
}

func TestSplitQ1(t *testing.T) {
	assert.Nil(t, SplitQ1(""))
	assert.Equal(t, []string{"1. SEAH awareness"}, SplitQ1("1. SEAH awareness"))
	assert.Equal(t,
		[]string{"1. SEAH awareness", "7. Risk assessment"},
		SplitQ1("1. SEAH awareness, 7. Risk assessment"))
}

func TestValuesMatchesColumnOrder(t *testing.T) {
	r := row("255700000001", "A", "Field", "M")
	r.EmploymentStatus = strPtr("Permanent")
	r.Status = strPtr("Active")
	r.Q1 = strPtr("1. SEAH awareness")
	r.Q2 = strPtr("free text")
	r.Q3 = strPtr("more text")

	values := r.Values()

	require.Len(t, values, len(Columns))
	assert.Equal(t, r.PhoneNumber, values[0])
	assert.Equal(t, r.Q3, values[len(values)-1])
}
