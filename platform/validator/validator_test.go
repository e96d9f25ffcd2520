package validator

import "testing"

type contactInput struct {
	Mobile *string `validate:"omitempty,max=16,contactvalue"`
}

func TestContactValueRejectsControlCharacters(t *testing.T) {
	val := New()

	ok := "07911 123456"
	if err := val.Struct(contactInput{Mobile: &ok}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	bad := "07911\n123456"
	if err := val.Struct(contactInput{Mobile: &bad}); err == nil {
		t.Fatalf("expected control characters to be rejected")
	}

	long := "07911 123456 ext 1234"
	if err := val.Struct(contactInput{Mobile: &long}); err == nil {
		t.Fatalf("expected max length to be enforced")
	}

	if err := val.Struct(contactInput{}); err != nil {
		t.Fatalf("expected nil field to pass, got %v", err)
	}
}

type plainInput struct {
	Value string `validate:"contactvalue"`
}

func TestNewRegistersContactValueForPlainFields(t *testing.T) {
	val := New()
	if err := val.Struct(plainInput{Value: "01632\t960001"}); err != nil {
		t.Fatalf("expected tab to be allowed, got %v", err)
	}
	if err := val.Struct(plainInput{Value: "01632\x00960001"}); err == nil {
		t.Fatalf("expected NUL to be rejected")
	}
}
