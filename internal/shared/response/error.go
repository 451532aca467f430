package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/outfitpicker/server/internal/shared/errors"
)

// AppError writes e as the JSON error body with its status code.
func AppError(c *gin.Context, e *apperrors.AppError) {
	if e.Err != nil {
		_ = c.Error(e)
	}
	c.JSON(e.StatusCode, e.ToResponse())
}

// ErrorMapping maps a domain error to an application error constructor.
type ErrorMapping struct {
	Err   error
	Build func(err error) *apperrors.AppError
}

// HandleError writes the first mapping matching err.
// Returns true if the error was handled, false otherwise.
func HandleError(c *gin.Context, err error, mappings []ErrorMapping) bool {
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			AppError(c, m.Build(err))
			return true
		}
	}
	return false
}

// HandleErrorWithDefault handles an error with a 500 fallback.
func HandleErrorWithDefault(c *gin.Context, err error, mappings []ErrorMapping) {
	if !HandleError(c, err, mappings) {
		AppError(c, apperrors.Internal("internal server error", err))
	}
}
