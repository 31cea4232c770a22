package validate_test

import (
	"testing"

	"github.com/plantnet-dev/plantnet/pkg/validate"
)

type orderInput struct {
	PlantID  string  `json:"plantId"  validate:"required"`
	Seller   string  `json:"seller"   validate:"required,email"`
	Quantity int     `json:"quantity" validate:"required,integer,gte=1"`
	Price    float64 `json:"price"    validate:"required,numeric,gt=0"`
	Status   string  `json:"status"   validate:"nullable,in=increase,decrease"`
	Image    string  `json:"image"    validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(orderInput{
		PlantID:  "679a2f19c7d2a9f3d1e4b5c6",
		Seller:   "seller@example.com",
		Quantity: 2,
		Price:    19.99,
		Status:   "increase",
		Image:    "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(orderInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["plantId"]; !ok {
		t.Error("expected plantId to be required")
	}
	if _, ok := errs["quantity"]; !ok {
		t.Error("expected quantity to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors for valid email, got: %v", errs)
	}
}

func TestInRuleKeepsParamList(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=increase,decrease,max=20"`
	}
	errs := validate.Struct(in{Status: "decrease"})
	if validate.HasErrors(errs) {
		t.Errorf("expected 'decrease' to pass the in rule, got: %v", errs)
	}
	errs = validate.Struct(in{Status: "sideways"})
	if _, ok := errs["status"]; !ok {
		t.Error("expected in violation for unknown status")
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=100"`
	}
	if errs := validate.Struct(in{Quantity: 0}); !validate.HasErrors(errs) {
		t.Error("expected gte violation for zero quantity")
	}
	if errs := validate.Struct(in{Quantity: 101}); !validate.HasErrors(errs) {
		t.Error("expected lte violation for excessive quantity")
	}
	if errs := validate.Struct(in{Quantity: 5}); validate.HasErrors(errs) {
		t.Errorf("expected 5 to pass, got: %v", errs)
	}
}

func TestNestedStructFields(t *testing.T) {
	type in struct {
		Customer struct {
			Name  string `json:"name"  validate:"nullable"`
			Email string `json:"email" validate:"required,email"`
		} `json:"customer"`
		Seller string `json:"seller" validate:"required,email"`
	}

	errs := validate.Struct(in{Seller: "s@example.com"})
	if _, ok := errs["customer.email"]; !ok {
		t.Errorf("expected nested customer.email to be required, got: %v", errs)
	}

	var ok in
	ok.Customer.Email = "c@example.com"
	ok.Seller = "s@example.com"
	if errs := validate.Struct(ok); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	type in struct {
		Image string `json:"image" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Image: ""}); validate.HasErrors(errs) {
		t.Errorf("nullable empty field should pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Image: "not a url"}); !validate.HasErrors(errs) {
		t.Error("expected url violation when nullable field is set")
	}
}
