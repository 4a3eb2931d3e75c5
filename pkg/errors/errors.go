package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps k onto the response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrTokenMissing       = &AppError{Kind: KindUnauthenticated, Code: "TOKEN_MISSING", Message: "token is missing"}
	ErrTokenInvalid       = &AppError{Kind: KindUnauthenticated, Code: "TOKEN_INVALID", Message: "token is invalid or expired"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthenticated, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}

	ErrForbidden     = &AppError{Kind: KindForbidden, Code: "FORBIDDEN", Message: "you do not have permission to perform that operation"}
	ErrAdminRequired = &AppError{Kind: KindForbidden, Code: "ADMIN_REQUIRED", Message: "cannot perform that operation without admin rights"}
	ErrListNotOwned  = &AppError{Kind: KindForbidden, Code: "LIST_NOT_OWNED", Message: "that shopping list is not yours"}

	ErrUserNotFound       = &AppError{Kind: KindNotFound, Code: "NO_SUCH_USER", Message: "that user does not exist"}
	ErrUserAlreadyExists  = &AppError{Kind: KindConflict, Code: "USER_EXISTS", Message: "user already exists"}
	ErrResetTokenInvalid  = &AppError{Kind: KindNotFound, Code: "RESET_TOKEN_INVALID", Message: "the reset token is not valid or has expired"}
	ErrSelfFriend         = &AppError{Kind: KindBadRequest, Code: "SELF_FRIEND", Message: "you cannot befriend yourself"}
	ErrAlreadyFriends     = &AppError{Kind: KindConflict, Code: "ALREADY_FRIENDS", Message: "you are already friends"}
	ErrRequestAlreadySent = &AppError{Kind: KindConflict, Code: "REQUEST_ALREADY_SENT", Message: "friend request already sent"}
	ErrNoSuchRequest      = &AppError{Kind: KindNotFound, Code: "NO_SUCH_REQUEST", Message: "you have no friend request from that user"}
	ErrNotFriends         = &AppError{Kind: KindNotFound, Code: "NOT_FRIENDS", Message: "you are not friends with that user"}
	// ErrShareNotFriends shares the NOT_FRIENDS code but rejects the share as forbidden.
	ErrShareNotFriends = &AppError{Kind: KindForbidden, Code: "NOT_FRIENDS", Message: "lists can only be shared to friends"}

	ErrNoSuchList    = &AppError{Kind: KindNotFound, Code: "NO_SUCH_LIST", Message: "that list does not exist"}
	ErrAlreadyShared = &AppError{Kind: KindConflict, Code: "ALREADY_SHARED", Message: "that list has already been shared"}
	ErrNotShared     = &AppError{Kind: KindNotFound, Code: "NOT_SHARED", Message: "that list has not been shared"}
	ErrListNotFound  = &AppError{Kind: KindNotFound, Code: "LIST_NOT_FOUND", Message: "that shopping list does not exist"}
	ErrItemNotFound  = &AppError{Kind: KindNotFound, Code: "ITEM_NOT_FOUND", Message: "that shopping list item does not exist"}
	ErrListExists    = &AppError{Kind: KindConflict, Code: "LIST_EXISTS", Message: "that shopping list already exists"}
	ErrItemExists    = &AppError{Kind: KindConflict, Code: "ITEM_EXISTS", Message: "that item already exists"}

	ErrEmptyResult       = &AppError{Kind: KindNotFound, Code: "EMPTY_RESULT", Message: "no results found"}
	ErrInvalidPagination = &AppError{Kind: KindBadRequest, Code: "INVALID_PAGINATION", Message: "the parameters provided should be positive integers"}
	ErrInvalidID         = &AppError{Kind: KindBadRequest, Code: "INVALID_ID", Message: "the identifier provided is not valid"}
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: message, Err: e.Err}
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(err error) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "Invalid input",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    "INTERNAL",
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf reports the kind of err; anything that is not an AppError is internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
