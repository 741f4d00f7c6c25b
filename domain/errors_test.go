package domain

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("get task: %w", WrapError(ErrCodeNotFound, ErrTaskNotFound.Message, sql.ErrNoRows))
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("wrapped copy should match the sentinel")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("cause should stay reachable")
	}
	if errors.Is(err, ErrTitleRequired) {
		t.Fatalf("different sentinel must not match")
	}
}

func TestCodeOf(t *testing.T) {
	cases := map[error]ErrorCode{
		ErrTaskNotFound:                       ErrCodeNotFound,
		fmt.Errorf("x: %w", ErrTitleRequired): ErrCodeInvalid,
		errors.New("boom"):                    ErrCodeInternal,
		nil:                                   ErrCodeInternal,
	}
	for err, want := range cases {
		if got := CodeOf(err); got != want {
			t.Fatalf("CodeOf(%v) = %s, want %s", err, got, want)
		}
	}
	if IsDomainError(nil, ErrCodeInternal) {
		t.Fatalf("nil is not a domain error")
	}
}
