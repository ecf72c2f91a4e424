package model

import (
	"errors"
	"testing"
)

func TestErrorKind_Fatal(t *testing.T) {
	fatal := []ErrorKind{KindFetch, KindParse, KindUnknownSource}
	for _, k := range fatal {
		if !k.Fatal() {
			t.Errorf("expected %s to be fatal", k)
		}
	}
	recoverable := []ErrorKind{KindNormalization, KindMappingGap, KindReconciliation}
	for _, k := range recoverable {
		if k.Fatal() {
			t.Errorf("expected %s to be recoverable", k)
		}
	}
}

func TestWrapErr_PreservesKind(t *testing.T) {
	inner := Errf(KindFetch, "record not found")
	wrapped := WrapErr(KindParse, "parse record", inner)
	if KindOf(wrapped) != KindFetch {
		t.Errorf("expected inner kind to survive wrapping, got %s", KindOf(wrapped))
	}
}

func TestWrapErr_AttachesKind(t *testing.T) {
	err := WrapErr(KindParse, "parse record", errors.New("unexpected EOF"))
	if KindOf(err) != KindParse {
		t.Errorf("expected kind parse, got %s", KindOf(err))
	}
	if err.Error() != "parse record: unexpected EOF" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestKindOf_Untyped(t *testing.T) {
	if KindOf(errors.New("plain")) != "" {
		t.Error("expected empty kind for untyped error")
	}
}
