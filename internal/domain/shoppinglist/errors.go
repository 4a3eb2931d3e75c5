package shoppinglist

import "errors"

var (
	ErrListNotFound = errors.New("shopping list not found")
	ErrItemNotFound = errors.New("shopping list item not found")
)
