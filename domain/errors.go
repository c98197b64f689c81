package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the caller is not the author of the item
	ErrForbidden = errors.New("you are not allowed to do this action")
)

// Course payload validation failures. The course service checks the rules
// in a fixed order and reports the first one that fails.
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be 200 characters or less")
	ErrDescriptionRequired = errors.New("description is required")
	ErrLocationsRequired   = errors.New("at least one location is required")
	ErrTagsRequired        = errors.New("at least one tag is required")
	ErrContentRequired     = errors.New("content is required")
)

// IsValidationError reports whether err is one of the course payload rules.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrTitleTooLong),
		errors.Is(err, ErrDescriptionRequired),
		errors.Is(err, ErrLocationsRequired),
		errors.Is(err, ErrTagsRequired),
		errors.Is(err, ErrContentRequired):
		return true
	}
	return false
}
