package services

import "errors"

var (
	// ErrEmptyContent rejects blank or whitespace-only submissions
	// before any repository call is made.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrOwnPost rejects an author commenting on their own post. The
	// rule is enforced here, in the write path, not only hidden in the
	// UI affordance.
	ErrOwnPost = errors.New("cannot comment on your own post")

	// ErrFarmerOnly guards the community board, which is scoped to the
	// Farmer role.
	ErrFarmerOnly = errors.New("community board is available to farmers only")

	// ErrWrite wraps backend create failures.
	ErrWrite = errors.New("write failed")

	// ErrLoad wraps backend read failures during tree assembly. Callers
	// keep the previously assembled tree when they see it.
	ErrLoad = errors.New("load failed")

	// ErrInvalidCredentials is returned on a failed login without
	// revealing whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
