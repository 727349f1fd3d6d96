package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB sqlmock + gorm MySQL 方言，用于构造存储层错误
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return gormDB, mock
}

// setupSQLite 内存数据库，已写入默认类别
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	_, err = database.SeedCategories(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestRouter 按 /api 前缀注册全部处理器
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api")
	g.GET("/health", Health)

	a := NewAnalyticsHandler(db)
	g.GET("/analytics/summary", a.Summary)
	g.GET("/analytics/by-category", a.ByCategory)
	g.GET("/analytics/trends", a.Trends)
	g.GET("/analytics/budgets", a.Budgets)

	cat := NewCategoryHandler(db)
	g.GET("/categories", cat.List)
	g.GET("/categories/:id", cat.Get)
	g.PUT("/categories/:id", cat.Update)

	txn := NewTransactionHandler(db)
	g.GET("/transactions", txn.List)
	g.GET("/transactions/:id", txn.Get)
	g.POST("/transactions", txn.Create)
	g.PUT("/transactions/:id", txn.Update)
	g.DELETE("/transactions/:id", txn.Delete)

	goal := NewGoalHandler(db)
	g.GET("/goals", goal.List)
	g.GET("/goals/:id", goal.Get)
	g.POST("/goals", goal.Create)
	g.PUT("/goals/:id", goal.Update)
	g.POST("/goals/:id/progress", goal.UpdateProgress)
	g.DELETE("/goals/:id", goal.Delete)

	exp := NewExportHandler(db)
	g.GET("/export/transactions", exp.Transactions)
	g.GET("/export/goals", exp.Goals)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *ErrorBody      `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

func categoryIDByName(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var cat models.Category
	require.NoError(t, db.Where("name = ?", name).First(&cat).Error)
	return cat.ID
}
