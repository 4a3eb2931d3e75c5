package friend

import "errors"

var (
	ErrLinkNotFound = errors.New("friend link not found")
	ErrLinkExists   = errors.New("friend link already exists")
)
