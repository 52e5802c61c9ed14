package faults

import (
	"errors"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(NotFoundError, "bot not found", nil)
	if !IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category match")
	}
	if IsCategory(err, ThrottlingError) {
		t.Fatalf("expected throttling category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, NotFoundError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, NotFoundError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewTypedError(TransportError, "invoke DescribeBot", cause)
	if err.Error() != "invoke DescribeBot: connection reset" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}

	bare := NewTypedError(WaitTimeoutError, "", nil)
	if bare.Error() != string(WaitTimeoutError) {
		t.Fatalf("unexpected bare message: %q", bare.Error())
	}
}
