package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRegNoTaken         = errors.New("registration number already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended, contact the administrator")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseCodeTaken = errors.New("course code already in use")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrQuizCodeTaken   = errors.New("quiz code already in use")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDeadlineExpired    = errors.New("quiz submission deadline has passed")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrInvalidMark        = errors.New("marks must be between 0 and 10")
)
