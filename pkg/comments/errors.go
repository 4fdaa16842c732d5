package comments

import "errors"

var (
	ErrNotFound    = errors.New("comments: not found")
	ErrEmptyID     = errors.New("comments: empty id")
	ErrQueryFailed = errors.New("comments: query failed")
)
