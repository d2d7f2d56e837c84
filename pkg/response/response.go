// Package response writes the JSON envelopes every endpoint returns.
package response

import (
	"errors"
	"net/http"
	"time"

	"transfer-risk-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Decision is the gate outcome a caller acts on without inspecting data.
type Decision string

const (
	DecisionAllow Decision = "ALLOW"
	DecisionBlock Decision = "BLOCK"
)

// DecisionFor maps a pass/fail verdict to its Decision.
func DecisionFor(pass bool) Decision {
	if pass {
		return DecisionAllow
	}
	return DecisionBlock
}

// SuccessResponse is the standard success envelope.
// Decision is set only by the risk gates.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	Decision  Decision    `json:"decision,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope. A gate that fails closed sets
// Decision to BLOCK and may attach the partial result as Data.
type ErrorResponse struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Decision  Decision    `json:"decision,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, success(c, data, ""))
}

// Decided sends a 200 gate verdict.
func Decided(c *gin.Context, decision Decision, data interface{}) {
	c.JSON(http.StatusOK, success(c, data, decision))
}

// Unavailable sends a 503 response carrying data, used by the health probe.
func Unavailable(c *gin.Context, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, success(c, data, ""))
}

// Error sends an error response. *apperror.AppError anywhere in the chain sets
// the status and code; anything else is a 500.
func Error(c *gin.Context, err error) {
	status, body := failure(c, err)
	c.JSON(status, body)
}

// Blocked sends the error response of a gate that failed closed, with the
// decision forced to BLOCK and data attached when non-nil.
func Blocked(c *gin.Context, err error, data interface{}) {
	status, body := failure(c, err)
	body.Decision = DecisionBlock
	body.Data = data
	c.JSON(status, body)
}

func success(c *gin.Context, data interface{}, decision Decision) SuccessResponse {
	return SuccessResponse{
		Data:      data,
		Decision:  decision,
		RequestID: getRequestID(c),
		Timestamp: timestamp(),
	}
}

func failure(c *gin.Context, err error) (int, ErrorResponse) {
	body := ErrorResponse{
		ErrorCode: "SYS_000",
		Message:   "Internal server error",
		RequestID: getRequestID(c),
		Timestamp: timestamp(),
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, body
	}
	body.ErrorCode = appErr.Code
	body.Message = appErr.Message
	return appErr.HTTPStatus, body
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
