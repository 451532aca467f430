package wardrobe

import (
	"errors"
	"fmt"
)

// Domain errors for wardrobe.
var (
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidUpload          = errors.New("invalid upload")
	ErrStoreUnavailable       = errors.New("item store unavailable")
	ErrObjectStoreWrite       = errors.New("object store write failed")
	ErrObjectStoreUnavailable = errors.New("object store unavailable")
	ErrMetadataWrite          = errors.New("metadata write failed")
	ErrItemNotFound           = errors.New("no item available")
)

// Upload validation errors. Each one matches ErrInvalidUpload.
var (
	ErrMissingImage = fmt.Errorf("%w: an image is required", ErrInvalidUpload)
	ErrMissingBrand = fmt.Errorf("%w: brand is required", ErrInvalidUpload)
	ErrMissingColor = fmt.Errorf("%w: color is required", ErrInvalidUpload)
	ErrInvalidPrice = fmt.Errorf("%w: price must be greater than zero", ErrInvalidUpload)
)
