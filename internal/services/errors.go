// internal/services/errors.go
package services

import "errors"

// Domain errors returned by the services. Handlers map these onto HTTP
// statuses with errors.Is; anything else is treated as an internal error.
var (
	ErrInvalidPayload      = errors.New("invalid sale payload")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrTotalMismatch       = errors.New("declared total does not match line items")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrConcurrencyConflict = errors.New("stock changed concurrently, sale aborted")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrMetricsNotFound  = errors.New("metrics not found")

	ErrCategoryInUse      = errors.New("category still has products assigned")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrProductNameTaken   = errors.New("product name already exists")
	ErrCategoryNameTaken  = errors.New("category already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMFANotRequired     = errors.New("MFA not required for this user")
	ErrInvalidMFACode     = errors.New("invalid or expired code")
)
