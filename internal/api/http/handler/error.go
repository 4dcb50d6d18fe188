package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate-server/internal/apierrors"
)

// errMissingIdentity covers the unreachable case of a data route running
// without the authenticate middleware having set the caller's identity.
var errMissingIdentity = apierrors.NewErrSessionInvalid()

// errorResponse writes the uniform failure envelope. Only apierrors.APIError
// messages reach the client; anything else is reported as an internal error
// with the detail left to the logs.
func errorResponse(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewErrInternal(err)
	}

	c.AbortWithStatusJSON(apiErr.HTTPCode, gin.H{
		"success": false,
		"error":   apiErr.Code,
		"message": apiErr.Message,
	})
}

// successResponse writes the uniform success envelope, merging any extra
// payload fields into it.
func successResponse(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}

	c.JSON(status, body)
}

// badRequest reports a malformed request body.
func badRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   apierrors.CodeValidation,
		"message": "invalid request payload",
	})
}
