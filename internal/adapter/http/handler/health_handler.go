package handler

import (
	"context"
	"time"

	"transfer-risk-engine/internal/adapter/http/dto"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// HealthCheck handles GET /health, pinging every backing dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := make(map[string]dto.DependencyStatus, len(checkers))
		allHealthy := true

		for _, checker := range checkers {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			err := checker.Ping(ctx)
			cancel()

			if err != nil {
				deps[checker.Name()] = dto.DependencyStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = dto.DependencyStatus{Status: "healthy"}
			}
		}

		if !allHealthy {
			response.Unavailable(c, dto.HealthResponse{Status: "degraded", Dependencies: deps})
			return
		}
		response.OK(c, dto.HealthResponse{Status: "healthy", Dependencies: deps})
	}
}
