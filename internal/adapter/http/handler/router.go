package handler

import (
	"transfer-risk-engine/internal/adapter/http/middleware"
	"transfer-risk-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Compliance     ports.ComplianceEvaluator
	Fraud          ports.FraudScorer
	Accounts       ports.AccountRiskAssessor
	Guard          ports.TransactionGuard
	TokenSvc       ports.TokenService
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	RateLimit      middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	var rl gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil && deps.RateLimit.Limit > 0 {
		rl = middleware.RateLimiter(deps.RateLimiter, "risk", deps.RateLimit, deps.Logger)
	}

	h := NewRiskHandler(deps.Compliance, deps.Fraud, deps.Accounts, deps.Guard)
	risk := r.Group("/api/v1/risk", jwtAuth, rl)
	{
		risk.POST("/compliance", h.EvaluateCompliance)
		risk.POST("/fraud-score", h.ScoreFraud)
		risk.POST("/authorize", h.Authorize)
		risk.GET("/accounts/:id", h.AssessAccount)
	}

	return r
}
