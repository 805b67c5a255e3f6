package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when signup hits the unique index
	// on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup produces no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultItemNotFound is returned when a vault item does not exist or
	// belongs to another user.
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrUnsupportedDSN is returned when the DSN scheme selects no driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingTags         = errors.New("failed to encode tags column")
	ErrDecodingTags         = errors.New("failed to decode tags column")
)
