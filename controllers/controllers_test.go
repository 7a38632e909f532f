package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/controllers"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/routes"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var routerSeq int

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	routerSeq++
	dsn := fmt.Sprintf("file:ctrltest%d?mode=memory&cache=shared", routerSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	config.DB = db
	controllers.InitServices(db, services.DefaultConfig())

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return routes.SetupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/v1/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func adminToken(t *testing.T) string {
	t.Helper()
	hashed, err := utils.HashPassword("admin-password")
	require.NoError(t, err)
	admin := models.Admin{Email: "ops@crestvault.local", Password: hashed, IsActive: true}
	require.NoError(t, config.DB.Create(&admin).Error)

	token, err := utils.GenerateAdminToken(&admin)
	require.NoError(t, err)
	return token
}

func TestDepositReviewFlow(t *testing.T) {
	router := setupRouter(t)
	userTok := registerAndLogin(t, router, "alice")
	adminTok := adminToken(t)

	w := doJSON(t, router, http.MethodPost, "/v1/user/deposits", userTok, gin.H{
		"amount":         "500.00",
		"payment_method": "bank_transfer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("user token cannot reach admin surface", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/v1/admin/transactions/%d/approve", created.Data.ID), userTok, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/v1/admin/transactions/%d/approve", created.Data.ID), adminTok, gin.H{"notes": "verified"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/v1/user/wallet", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var balance struct {
		Data struct {
			Balance string `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	assert.Equal(t, "500.00", balance.Data.Balance)

	t.Run("second approval returns a validation failure", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			fmt.Sprintf("/v1/admin/transactions/%d/approve", created.Data.ID), adminTok, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func TestWithdrawalOverBalanceIsRefused(t *testing.T) {
	router := setupRouter(t)
	userTok := registerAndLogin(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/v1/user/withdrawals", userTok, gin.H{
		"amount":         "100.00",
		"payment_method": "bank_transfer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestUnknownReferralCodeIsRefused(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/register", "", gin.H{
		"username":      "carol",
		"email":         "carol@example.com",
		"password":      "password123",
		"referral_code": "NOPE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
