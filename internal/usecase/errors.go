package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDuplicate             = errors.New("resource already exists")
	ErrReportInProgress      = errors.New("report generation already in progress")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
