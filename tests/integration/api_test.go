package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "transfer-risk-engine/internal/adapter/http/handler"
	"transfer-risk-engine/internal/adapter/http/middleware"
	"transfer-risk-engine/internal/adapter/storage/memory"
	redisStorage "transfer-risk-engine/internal/adapter/storage/redis"
	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/internal/service"
	"transfer-risk-engine/pkg/logger"
	"transfer-risk-engine/pkg/money"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp runs the real router, middleware, services and Redis stores
// over the in-memory storage driver and miniredis.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	store  *memory.Store
	token  string
}

func strPtr(s string) *string { return &s }

func newTestApp(t *testing.T, rateLimit int64) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	store := memory.New()
	now := time.Now().UTC()
	store.Users.Put(domain.User{ID: "user-1", KYCStatus: domain.KYCStatusVerified, Country: strPtr("US")})
	store.Users.Put(domain.User{ID: "user-2", KYCStatus: domain.KYCStatusPending, Country: strPtr("CU")})
	store.Accounts.Put(domain.Account{ID: "acc-a", UserID: "user-1", CreatedAt: now.Add(-400 * 24 * time.Hour)})
	store.Accounts.Put(domain.Account{ID: "acc-b", UserID: "user-1", CreatedAt: now.Add(-30 * 24 * time.Hour)})
	store.Accounts.Put(domain.Account{ID: "acc-cu", UserID: "user-2", CreatedAt: now.Add(-2 * 24 * time.Hour)})

	log := logger.New("error", false)
	policy := service.DefaultRiskPolicy()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", time.Hour, "test-issuer")

	sink := service.NewAlertService(store.Alerts, redisStorage.NewAlertDedupStore(rdb), nil, 10*time.Minute, log)
	compliance := service.NewComplianceService(store.Transfers, store.Accounts, store.Users, sink, policy, log)
	fraud := service.NewFraudService(store.Transfers,
		service.NewHeuristicIPReputation(store.Transfers, policy.QueryTimeout),
		service.NewHeuristicDeviceReputation(store.Transfers, policy.QueryTimeout),
		sink, policy, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Compliance:     compliance,
		Fraud:          fraud,
		Accounts:       service.NewAccountRiskService(store.Transfers, store.Accounts, store.Users, store.Alerts, policy, log),
		Guard:          service.NewGuardService(compliance, fraud, log),
		TokenSvc:       tokenSvc,
		RateLimiter:    redisStorage.NewRateLimitStore(rdb),
		RateLimit:      middleware.RateLimitRule{Limit: rateLimit, Window: time.Minute},
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	token, _, err := tokenSvc.Generate("payments-api")
	require.NoError(t, err)

	app := &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
		store:  store,
		token:  token,
	}
	t.Cleanup(app.close)
	return app
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func transfer(from, to, amount string) map[string]interface{} {
	return map[string]interface{}{
		"from_account_id": from,
		"to_account_id":   to,
		"amount":          amount,
		"currency":        "USD",
	}
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t, 100)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Data.Status)
}

func TestIntegration_RequiresToken(t *testing.T) {
	app := newTestApp(t, 100)

	resp, err := http.Post(app.server.URL+"/api/v1/risk/compliance", "application/json",
		bytes.NewBufferString(`{"from_account_id":"acc-a","to_account_id":"acc-b","amount":"10","currency":"USD"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ComplianceFlow(t *testing.T) {
	app := newTestApp(t, 100)

	t.Run("ordinary transfer is compliant", func(t *testing.T) {
		resp, env := app.do(t, http.MethodPost, "/api/v1/risk/compliance", transfer("acc-a", "acc-b", "500"))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result domain.ComplianceResult
		require.NoError(t, json.Unmarshal(env["data"], &result))
		assert.True(t, result.Compliant)
		assert.JSONEq(t, `"ALLOW"`, string(env["decision"]))
		assert.Empty(t, result.Alerts)
	})

	t.Run("sanctioned recipient is blocked", func(t *testing.T) {
		resp, env := app.do(t, http.MethodPost, "/api/v1/risk/compliance", transfer("acc-a", "acc-cu", "500"))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result domain.ComplianceResult
		require.NoError(t, json.Unmarshal(env["data"], &result))
		assert.False(t, result.Compliant)
		assert.Equal(t, service.ReasonSanctions, result.Reason)
		assert.JSONEq(t, `"BLOCK"`, string(env["decision"]))
		require.Len(t, result.Alerts, 1)
		assert.Equal(t, domain.SeverityCritical, result.Alerts[0].Severity)
	})

	t.Run("malformed amount is rejected", func(t *testing.T) {
		resp, env := app.do(t, http.MethodPost, "/api/v1/risk/compliance", transfer("acc-a", "acc-b", "-1"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `"REQ_001"`, string(env["error_code"]))
	})
}

func TestIntegration_AuthorizeAndAccountRisk(t *testing.T) {
	app := newTestApp(t, 100)
	app.store.Transfers.Add(domain.TransferRecord{
		ID: "t1", FromAccountID: "acc-a", ToAccountID: "acc-b",
		Amount: money.MustParse("9800"), Currency: "USD",
		Status: domain.TransferStatusCompleted, CreatedAt: time.Now().UTC().Add(-3 * time.Hour),
	})

	resp, env := app.do(t, http.MethodPost, "/api/v1/risk/authorize", transfer("acc-a", "acc-b", "250"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth domain.Authorization
	require.NoError(t, json.Unmarshal(env["data"], &auth))
	assert.False(t, auth.Proceed)
	assert.Equal(t, service.ReasonAMLLimit, auth.Compliance.Reason)
	assert.Nil(t, auth.Fraud)

	resp, env = app.do(t, http.MethodGet, "/api/v1/risk/accounts/acc-a", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var risk domain.AccountRiskResult
	require.NoError(t, json.Unmarshal(env["data"], &risk))
	assert.Equal(t, 20, risk.Score)
	assert.Equal(t, []string{"1 pending compliance alerts"}, risk.Factors)

	resp, env = app.do(t, http.MethodGet, "/api/v1/risk/accounts/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `"REQ_004"`, string(env["error_code"]))
}

func TestIntegration_FraudScoreQuietAccount(t *testing.T) {
	app := newTestApp(t, 100)

	resp, env := app.do(t, http.MethodPost, "/api/v1/risk/fraud-score", transfer("acc-b", "acc-a", "50"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.FraudScoreResult
	require.NoError(t, json.Unmarshal(env["data"], &result))
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Allowed)
	assert.Empty(t, result.Rules)
}

func TestIntegration_RateLimit(t *testing.T) {
	app := newTestApp(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := app.do(t, http.MethodGet, "/api/v1/risk/accounts/acc-a", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, env := app.do(t, http.MethodGet, "/api/v1/risk/accounts/acc-a", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.JSONEq(t, `"RATE_001"`, string(env["error_code"]))
}
