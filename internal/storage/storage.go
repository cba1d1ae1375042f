package storage

import "errors"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrContentTypeNotFound = errors.New("content type not found")
	ErrContentTypeExists   = errors.New("content type already exists")
	ErrEntryNotFound       = errors.New("content entry not found")

	ErrExperienceNotFound = errors.New("experience not found")

	ErrMediaNotFound = errors.New("media not found")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
