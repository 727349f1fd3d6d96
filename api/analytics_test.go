package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fintrack/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsHandler_Endpoints(t *testing.T) {
	db := setupSQLite(t)
	r := newTestRouter(db)

	for _, body := range []string{
		fmt.Sprintf(`{"type":"income","amount":5000,"category_id":%d,"date":"2024-01-05"}`, categoryIDByName(t, db, "Salary")),
		fmt.Sprintf(`{"type":"expense","amount":1200,"category_id":%d,"date":"2024-01-10"}`, categoryIDByName(t, db, "Housing")),
		fmt.Sprintf(`{"type":"expense","amount":80,"category_id":%d,"date":"2024-03-02"}`, categoryIDByName(t, db, "Utilities")),
	} {
		w := doRequest(r, "POST", "/api/transactions", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doRequest(r, "GET", "/api/analytics/summary?startDate=2024-01-01&endDate=2024-01-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"total_income":5000,"total_expenses":1200,"balance":3800}}`, w.Body.String())

	w = doRequest(r, "GET", "/api/analytics/by-category?startDate=2024-03-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []service.CategoryTotal
	decodeData(t, w, &rows)
	require.Len(t, rows, 15)
	assert.Equal(t, "Utilities", rows[0].Name)
	assert.Equal(t, "Utilities", rows[0].CategoryName)
	assert.Equal(t, rows[0].ID, rows[0].CategoryID)

	w = doRequest(r, "GET", "/api/analytics/trends", "")
	require.Equal(t, http.StatusOK, w.Code)
	var trends []service.MonthlyTrend
	decodeData(t, w, &trends)
	require.Len(t, trends, 2)
	assert.Equal(t, "2024-01", trends[0].Month)
	assert.Equal(t, "2024-03", trends[1].Month)

	w = doRequest(r, "GET", "/api/analytics/budgets?startDate=2024-01-01&endDate=2024-01-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	var overview service.BudgetOverview
	decodeData(t, w, &overview)
	assert.Len(t, overview.Categories, 10)
	assert.Zero(t, overview.TotalBudget)
}

func TestAnalyticsHandler_InvalidDate(t *testing.T) {
	r := newTestRouter(setupSQLite(t))

	w := doRequest(r, "GET", "/api/analytics/summary?startDate=2024-1-1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, "startDate", env.Error.Details[0].Field)
}

func TestAnalyticsHandler_StorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("(?s)SELECT .* FROM `transactions`").WillReturnError(errors.New("disk I/O error"))

	w := doRequest(newTestRouter(db), "GET", "/api/analytics/summary", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
