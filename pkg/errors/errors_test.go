package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedRecord, "record %d: missing %s", 3, "object id")

	if err.Code != ErrCodeMalformedRecord {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeMalformedRecord)
	}
	want := "MALFORMED_RECORD: record 3: missing object id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeDataLoad, cause, "fetch %s", "records.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeDataLoad, "boom"), ErrCodeDataLoad, true},
		{"DifferentCode", New(ErrCodeDataLoad, "boom"), ErrCodeMalformedRecord, false},
		{"WrappedInStdError", fmt.Errorf("outer: %w", New(ErrCodeInvalidFormat, "bad")), ErrCodeInvalidFormat, true},
		{"PlainError", stderrors.New("plain"), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPath, "bad path")); got != ErrCodeInvalidPath {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidPath)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeDataLoad, "could not load data")); got != "could not load data" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw message")); got != "raw message" {
		t.Errorf("UserMessage = %q", got)
	}
}
