package models

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var storeColumns = []string{
	"id", "phone_number", "efd", "job_category", "employment_status",
	"sex", "status", "q1", "q2", "q3",
}

func TestFetchAllScansNullsAsNil(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, phone_number").WillReturnRows(
		sqlmock.NewRows(storeColumns).
			AddRow(1, "0712000001", nil, "Driver", nil, "M", nil,
				"1. SEAH awareness", nil, "None"))

	rows, err := FetchAll(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, int64(1), r.ID)
	require.NotNil(t, r.PhoneNumber)
	assert.Equal(t, "0712000001", *r.PhoneNumber)
	assert.Nil(t, r.EFD)
	assert.Nil(t, r.EmploymentStatus)
	assert.Nil(t, r.Q2)
	require.NotNil(t, r.Q3)
	assert.Equal(t, "None", *r.Q3)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAllQueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, phone_number").WillReturnError(assert.AnError)

	_, err := FetchAll(db)
	assert.ErrorContains(t, err, "failed to query survey responses")
}

func TestReplaceAllTruncatesAndInsertsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	rows := []SurveyResponse{
		{PhoneNumber: strPtr("0712000001")},
		{PhoneNumber: strPtr("0712000002")},
		{PhoneNumber: strPtr("0712000003")},
	}

	require.NoError(t, ReplaceAll(db, rows, 1000))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllBatchesInserts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// 3 rows with batch size 2 means two INSERT statements
	mock.ExpectExec("INSERT INTO survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := []SurveyResponse{
		{PhoneNumber: strPtr("a")},
		{PhoneNumber: strPtr("b")},
		{PhoneNumber: strPtr("c")},
	}

	require.NoError(t, ReplaceAll(db, rows, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO survey_responses").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := ReplaceAll(db, []SurveyResponse{{PhoneNumber: strPtr("a")}}, 1000)
	assert.ErrorContains(t, err, "failed to insert batch")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllEmptyUploadClearsTable(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE survey_responses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, ReplaceAll(db, nil, 1000))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildInsertPlaceholders(t *testing.T) {
	query, args := buildInsert([]SurveyResponse{
		{PhoneNumber: strPtr("a")},
		{Q3: strPtr("z")},
	})

	assert.Contains(t, query, "INSERT INTO survey_responses (phone_number, efd,")
	assert.Contains(t, query, "($1, $2, $3, $4, $5, $6, $7, $8, $9)")
	assert.Contains(t, query, "($10, $11, $12, $13, $14, $15, $16, $17, $18)")
	assert.Len(t, args, 18)
}

func TestUpdateReturnsNoRowsForMissingID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("UPDATE survey_responses SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := Update(db, 42, &SurveyResponse{})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteReturnsNoRowsForMissingID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM survey_responses WHERE id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := Delete(db, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	n, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)
}
