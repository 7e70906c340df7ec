package models

import (
	"database/sql"
	"fmt"
	"strings"
)

const selectAll = `SELECT id, phone_number, efd, job_category, employment_status, sex, status, q1, q2, q3
FROM survey_responses
ORDER BY id`

// FetchAll loads every survey row in id order.
func FetchAll(db *sql.DB) ([]SurveyResponse, error) {
	rows, err := db.Query(selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var responses []SurveyResponse
	for rows.Next() {
		var r SurveyResponse
		if err := rows.Scan(
			&r.ID, &r.PhoneNumber, &r.EFD, &r.JobCategory, &r.EmploymentStatus,
			&r.Sex, &r.Status, &r.Q1, &r.Q2, &r.Q3,
		); err != nil {
			return nil, fmt.Errorf("failed to scan survey response: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read survey responses: %w", err)
	}

	return responses, nil
}

// ReplaceAll truncates survey_responses and inserts the given rows inside a
// single transaction, so readers either see the old batch or the new one.
func ReplaceAll(db *sql.DB, responses []SurveyResponse, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 1000
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`TRUNCATE TABLE survey_responses`); err != nil {
		return fmt.Errorf("failed to truncate survey_responses: %w", err)
	}

	for start := 0; start < len(responses); start += batchSize {
		end := min(start+batchSize, len(responses))
		query, args := buildInsert(responses[start:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert batch at row %d: %w", start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upload: %w", err)
	}
	return nil
}

// buildInsert renders a multi-row INSERT for one batch.
func buildInsert(batch []SurveyResponse) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO survey_responses (")
	sb.WriteString(strings.Join(Columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(batch)*len(Columns))
	for i := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range Columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*len(Columns)+j+1)
		}
		sb.WriteString(")")
		args = append(args, batch[i].Values()...)
	}

	return sb.String(), args
}

// Insert adds a single row.
func Insert(db *sql.DB, r *SurveyResponse) error {
	query, args := buildInsert([]SurveyResponse{*r})
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert survey response: %w", err)
	}
	return nil
}

// Update rewrites every survey column of one row. Returns sql.ErrNoRows when
// the id does not exist.
func Update(db *sql.DB, id int64, r *SurveyResponse) error {
	var sb strings.Builder
	sb.WriteString("UPDATE survey_responses SET ")
	for i, col := range Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = $%d", col, i+1)
	}
	fmt.Fprintf(&sb, " WHERE id = $%d", len(Columns)+1)

	args := append(r.Values(), id)
	result, err := db.Exec(sb.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to update survey response %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one row. Returns sql.ErrNoRows when the id does not exist.
func Delete(db *sql.DB, id int64) error {
	result, err := db.Exec(`DELETE FROM survey_responses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey response %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the number of stored rows.
func Count(db *sql.DB) (int64, error) {
	var n int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM survey_responses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count survey responses: %w", err)
	}
	return n, nil
}
