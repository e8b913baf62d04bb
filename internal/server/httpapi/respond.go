package httpapi

import (
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/dmitrijs2005/listkeeper/internal/common"
)

// respondError maps service errors to HTTP statuses and the {"error": msg}
// payload shape. Unknown errors are reported as a generic 500 so internals
// never leak to clients.
func respondError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, utils.H{"error": err.Error()})
	case errors.Is(err, common.ErrorRateLimited):
		c.JSON(http.StatusTooManyRequests, utils.H{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, utils.H{"error": "invalid email or password"})
	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, utils.H{"error": "invalid token"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, utils.H{"error": "user already exists"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, utils.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, utils.H{"error": "internal error"})
	}
}
