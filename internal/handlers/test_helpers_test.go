package handlers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/jirani/uchunguzi/internal/database"
)

var selectAllColumns = []string{
	"id", "phone_number", "efd", "job_category", "employment_status",
	"sex", "status", "q1", "q2", "q3",
}

func withMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	original := database.DB
	database.DB = mockDB

	return mock, func() {
		database.DB = original
		_ = mockDB.Close()
	}
}

func strPtr(s string) *string {
	return &s
}

func newTestApp() *fiber.App {
	return fiber.New()
}
