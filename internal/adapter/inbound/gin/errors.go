package gin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/port/outbound"
	apperrors "github.com/outfitpicker/server/internal/shared/errors"
	"github.com/outfitpicker/server/internal/shared/response"
)

// wardrobeErrors is checked in order; unavailable entries precede the
// store failures that wrap them.
var wardrobeErrors = []response.ErrorMapping{
	{Err: wardrobe.ErrInvalidUpload, Build: validation},
	{Err: wardrobe.ErrInvalidCategory, Build: validation},
	{Err: wardrobe.ErrItemNotFound, Build: func(error) *apperrors.AppError {
		return apperrors.NotFound("no item available for this category")
	}},
	{Err: outbound.ErrBackendUnavailable, Build: unavailable},
	{Err: wardrobe.ErrObjectStoreUnavailable, Build: unavailable},
	{Err: wardrobe.ErrObjectStoreWrite, Build: func(err error) *apperrors.AppError {
		return apperrors.BadGateway("failed to store image", err)
	}},
	{Err: wardrobe.ErrMetadataWrite, Build: func(err error) *apperrors.AppError {
		return apperrors.BadGateway("failed to record item details", err)
	}},
	{Err: wardrobe.ErrStoreUnavailable, Build: func(err error) *apperrors.AppError {
		return apperrors.BadGateway("could not read from the wardrobe store", err)
	}},
}

func validation(err error) *apperrors.AppError {
	return apperrors.ValidationError(userMessage(err))
}

func unavailable(err error) *apperrors.AppError {
	return apperrors.ServiceUnavailable("storage is temporarily unavailable", err)
}

// handleError maps domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, wardrobeErrors)
}

// userMessage is the message shown for an error in the upload form.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wardrobe.ErrMissingImage):
		return "Please choose an image to upload."
	case errors.Is(err, wardrobe.ErrMissingColor):
		return "Please enter a color."
	case errors.Is(err, wardrobe.ErrMissingBrand):
		return "Please enter a brand."
	case errors.Is(err, wardrobe.ErrInvalidPrice):
		return "Price must be a number greater than zero."
	case errors.Is(err, wardrobe.ErrInvalidCategory):
		return "Please choose one of the listed categories."
	case errors.Is(err, outbound.ErrBackendUnavailable), errors.Is(err, wardrobe.ErrObjectStoreUnavailable):
		return "Storage is temporarily unavailable. Please try again shortly."
	case errors.Is(err, wardrobe.ErrObjectStoreWrite):
		return "The image could not be stored. Please try again."
	case errors.Is(err, wardrobe.ErrMetadataWrite):
		return "The image was stored but its details could not be saved."
	case errors.Is(err, wardrobe.ErrStoreUnavailable):
		return "Something went wrong while reading the wardrobe."
	default:
		return "Something went wrong. Please try again."
	}
}

// toAppError returns the response an error maps to, for pages that render
// their own body.
func toAppError(err error) *apperrors.AppError {
	for _, m := range wardrobeErrors {
		if errors.Is(err, m.Err) {
			return m.Build(err)
		}
	}
	return apperrors.Internal("internal server error", err)
}
