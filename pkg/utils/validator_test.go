package utils

import (
	"errors"
	"testing"
)

type namedThing struct {
	Name  string `validate:"required,safename,max=100"`
	Email string `validate:"omitempty,email"`
}

func TestValidateStructSafeName(t *testing.T) {
	testCases := []struct {
		name    string
		input   namedThing
		wantErr bool
	}{
		{name: "letters and spaces", input: namedThing{Name: "Weekly groceries"}, wantErr: false},
		{name: "underscores and digits", input: namedThing{Name: "party_2024"}, wantErr: false},
		{name: "punctuation", input: namedThing{Name: "bread & butter"}, wantErr: true},
		{name: "blank", input: namedThing{Name: "   "}, wantErr: true},
		{name: "empty", input: namedThing{Name: ""}, wantErr: true},
		{name: "bad email", input: namedThing{Name: "ok", Email: "nope"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSanitizers(t *testing.T) {
	if got := SanitizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := SanitizeName("  Sunday   roast <b>list</b> "); got != "Sunday roast list" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := SanitizeText(" milk & <eggs>\n\tbread\x00 "); got != "milk &amp; &lt;eggs&gt;\n\tbread" {
		t.Fatalf("unexpected text %q", got)
	}
	if _, err := ValidateAndSanitizeEmail("not an email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email to be rejected, got %v", err)
	}
}
