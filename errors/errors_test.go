package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind    *Error
		err     error
		wantIs  bool
	}{
		"instance of the same root error": {
			kind:   ErrNotFound,
			err:    ErrNotFound,
			wantIs: true,
		},
		"wrapped root error": {
			kind:   ErrNotFound,
			err:    Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"deeply wrapped root error": {
			kind:   ErrNotFound,
			err:    Wrap(Wrap(ErrNotFound, "gone"), "parent"),
			wantIs: true,
		},
		"different root error": {
			kind:   ErrNotFound,
			err:    ErrUnauthorized,
			wantIs: false,
		},
		"stdlib error": {
			kind:   ErrNotFound,
			err:    fmt.Errorf("stdlib"),
			wantIs: false,
		},
		"nil error": {
			kind:   ErrNotFound,
			err:    nil,
			wantIs: false,
		},
		"wrapped different root": {
			kind:   ErrNotFound,
			err:    Wrap(ErrState, "bad state"),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrappedErrorCode(t *testing.T) {
	err := Wrap(Wrap(ErrDuplicate, "inner"), "outer")
	c, ok := err.(interface{ Code() uint32 })
	if !ok {
		t.Fatal("wrapped error must expose a code")
	}
	if got, want := c.Code(), ErrDuplicate.Code(); got != want {
		t.Fatalf("want code %d, got %d", want, got)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrInput, "first")
	if stackTrace(err) == nil {
		t.Fatal("wrapping must attach a stack trace")
	}
	st := stackTrace(err)
	outer := Wrap(err, "second")
	if got := stackTrace(outer); len(got) != len(st) {
		t.Fatal("wrapping must not attach a second stack trace")
	}
}

func TestWrapStdlibError(t *testing.T) {
	err := Wrap(errors.New("external"), "context")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got, want := err.Error(), "context: external"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("appending nils must return nil, got %+v", err)
	}
	err := Append(ErrNotFound.New("a"), nil, ErrState.New("b"))
	if err == nil {
		t.Fatal("expected a combined error")
	}
	if got, want := err.Error(), "a: not found; b: invalid state"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("bang")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}
