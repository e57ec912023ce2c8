package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/account-inventory/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	RespondErrorMessage(c, status, code, msg, err)
}

// RespondErrorMessage sends msg to the client and records err on the
// context for the request log only.
func RespondErrorMessage(c *gin.Context, status int, code, msg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes an *apierr.Error found in err's chain, or a 500
// with fallbackCode.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, fallbackCode)
	RespondErrorMessage(c, ae.Status, ae.Code, ae.Public(), ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
