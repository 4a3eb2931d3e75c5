package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorIsMatchesOnCode(t *testing.T) {
	if !errors.Is(ErrShareNotFriends, ErrNotFriends) {
		t.Fatal("expected share gate error to match NOT_FRIENDS")
	}
	if errors.Is(ErrAlreadyFriends, ErrRequestAlreadySent) {
		t.Fatal("expected distinct codes not to match")
	}

	wrapped := fmt.Errorf("send request: %w", ErrSelfFriend)
	if !errors.Is(wrapped, ErrSelfFriend) {
		t.Fatal("expected wrapped error to match SELF_FRIEND")
	}
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error is internal", err: errors.New("boom"), want: KindInternal},
		{name: "conflict", err: ErrAlreadyShared, want: KindConflict},
		{name: "wrapped forbidden", err: fmt.Errorf("guard: %w", ErrForbidden), want: KindForbidden},
		{name: "validation", err: NewValidationError(errors.New("bad")), want: KindBadRequest},
		{name: "internal wrapper", err: Internal(errors.New("db down")), want: KindInternal},
		{name: "token missing", err: ErrTokenMissing, want: KindUnauthenticated},
		{name: "empty result", err: ErrEmptyResult, want: KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("expected kind %s, got %s", tc.want, got)
			}
		})
	}
}

func TestWithMessageKeepsCode(t *testing.T) {
	err := ErrEmptyResult.WithMessage("You have no friends")
	if err.Message != "You have no friends" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatal("expected custom message error to keep EMPTY_RESULT code")
	}
	if ErrEmptyResult.Message != "no results found" {
		t.Fatal("expected sentinel to stay untouched")
	}
}

func TestKindHTTPStatus(t *testing.T) {
	testCases := map[Kind]int{
		KindBadRequest:      400,
		KindUnauthenticated: 401,
		KindForbidden:       403,
		KindNotFound:        404,
		KindConflict:        409,
		KindInternal:        500,
	}

	for kind, want := range testCases {
		if got := kind.HTTPStatus(); got != want {
			t.Fatalf("expected %s to map to %d, got %d", kind, want, got)
		}
	}
}
