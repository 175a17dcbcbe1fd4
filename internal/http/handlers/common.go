package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"transport-backend/internal/domain"
	"transport-backend/internal/http/middleware"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps request bodies read by readBody.
const maxBodyBytes = 1 << 20

// readBody returns the raw request body, replying 400 when it is missing.
func readBody(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty_body", "Request body is required", nil)
		return nil, false
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "Request body could not be read", nil)
		return nil, false
	}
	return raw, true
}

// bindJSON decodes the body into dst and answers 400 on malformed input.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	raw, ok := readBody(c)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			respondError(c, http.StatusBadRequest, "validation_error", "Validation failed",
				[]domain.FieldViolation{{Field: typeErr.Field, Message: "has the wrong type"}})
		case errors.Is(err, utils.ErrInvalidDecimal), errors.Is(err, utils.ErrTooPrecise), errors.Is(err, utils.ErrAmountOverflow):
			respondError(c, http.StatusBadRequest, "validation_error", "Validation failed",
				[]domain.FieldViolation{{Field: "quantity", Message: err.Error()}})
		default:
			respondError(c, http.StatusBadRequest, "invalid_body", "Malformed JSON body", nil)
		}
		return false
	}
	return true
}

type statusRequest struct {
	Status string `json:"status"`
}

// adminActor names the authenticated admin for audit log lines.
func adminActor(c *gin.Context) string {
	if rc, ok := middleware.GetRequestContext(c); ok {
		return rc.Subject
	}
	return ""
}
