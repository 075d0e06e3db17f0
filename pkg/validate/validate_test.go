package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

type signupInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=25"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type orderInput struct {
	Quantity  int    `json:"quantity"   validate:"required,min=1,max=100"`
	PizzaSize string `json:"pizza_size" validate:"required,in=SMALL|MEDIUM|LARGE|EXTRA_LARGE"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "john_doe",
		Email:    "john@example.com",
		Password: "secret123",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&signupInput{Username: "   "})
	for _, f := range []string{"username", "email", "password"} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected %s to be required", f)
		}
	}
	if got := errs["username"]; got != "The username field is required." {
		t.Errorf("blank username: got %q", got)
	}
}

func TestAlphaDashAndLength(t *testing.T) {
	errs := validate.Struct(signupInput{Username: "john doe!", Email: "a@b.co", Password: "short"})
	if _, ok := errs["username"]; !ok {
		t.Error("expected alpha_dash failure")
	}
	if got := errs["password"]; got != "The password must be at least 8 characters." {
		t.Errorf("short password: got %q", got)
	}
}

func TestNumericBounds(t *testing.T) {
	if errs := validate.Struct(orderInput{Quantity: -1, PizzaSize: "SMALL"}); errs["quantity"] != "The quantity must be at least 1." {
		t.Errorf("negative quantity: got %v", errs)
	}
	if errs := validate.Struct(orderInput{Quantity: 101, PizzaSize: "SMALL"}); errs["quantity"] != "The quantity must not be greater than 100." {
		t.Errorf("quantity above 100: got %v", errs)
	}
	if errs := validate.Struct(orderInput{Quantity: 2, PizzaSize: "SMALL"}); validate.HasErrors(errs) {
		t.Errorf("expected valid order, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	if errs := validate.Struct(orderInput{Quantity: 1, PizzaSize: "HUGE"}); errs["pizza_size"] != "The selected pizza_size is invalid." {
		t.Errorf("unknown size: got %v", errs)
	}
	if errs := validate.Struct(orderInput{Quantity: 1, PizzaSize: "EXTRA_LARGE"}); validate.HasErrors(errs) {
		t.Errorf("expected EXTRA_LARGE to pass, got: %v", errs)
	}
}

func TestUnknownRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown rule")
		}
	}()
	validate.Struct(struct {
		Name string `validate:"shiny"`
	}{})
}

func TestNonStructIsIgnored(t *testing.T) {
	if errs := validate.Struct("nope"); validate.HasErrors(errs) {
		t.Errorf("expected no errors for non-struct, got: %v", errs)
	}
}
