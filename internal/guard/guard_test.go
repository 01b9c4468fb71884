package guard

import (
	"errors"
	"testing"
)

func TestRegionRunsFunction(t *testing.T) {
	var r Region
	ran := false
	if err := r.Do(func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !ran {
		t.Fatal("function did not run")
	}
}

func TestRegionPropagatesError(t *testing.T) {
	var r Region
	want := errors.New("boom")
	if err := r.Do(func() error { return want }); err != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRegionRejectsNestedCall(t *testing.T) {
	var r Region
	err := r.Do(func() error {
		return r.Do(func() error {
			t.Fatal("nested call must not run")
			return nil
		})
	})
	if !errors.Is(err, ErrReentrantCall) {
		t.Fatalf("expected ErrReentrantCall, got %v", err)
	}
}

func TestRegionReleasesAfterFailure(t *testing.T) {
	var r Region
	_ = r.Do(func() error { return errors.New("boom") })

	if err := r.Do(func() error { return nil }); err != nil {
		t.Fatalf("region not released after failure: %v", err)
	}
}
