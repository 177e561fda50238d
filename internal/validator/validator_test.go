package validator

import "testing"

type loginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

func TestCheckValid(t *testing.T) {
	if fields := Check(loginForm{Email: "21CS001", Password: "secret"}); fields != nil {
		t.Errorf("Check = %v, want nil", fields)
	}
}

func TestCheckUsesJSONFieldNames(t *testing.T) {
	fields := Check(loginForm{Password: "secret"})
	if fields == nil {
		t.Fatal("Check accepted a missing required field")
	}
	if _, ok := fields["email"]; !ok {
		t.Errorf("error keyed by %v, want json tag name email", fields)
	}
}

func TestCheckTranslatedMessages(t *testing.T) {
	fields := Check(loginForm{})
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want errors for both", fields)
	}
	for name, msg := range fields {
		if msg == "" {
			t.Errorf("field %s has an empty message", name)
		}
	}
}
