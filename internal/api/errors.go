package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// statusFor maps a catalog error to the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrUnknownField),
		errors.Is(err, types.ErrCoercion),
		errors.Is(err, types.ErrNilItem):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Validation failures carry
// the full problem list; internal errors are logged and reported without
// detail.
func (h *ItemHandler) respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" failed", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, gin.H{"error": types.ErrValidation.Error(), "problems": verr.Problems})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
