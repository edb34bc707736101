package middleware

import (
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorMiddleware renders errors attached via c.Error into the standard
// error envelope. Handlers attach the error and return; rendering happens
// here in one place.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
