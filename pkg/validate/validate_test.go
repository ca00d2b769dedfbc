package validate_test

import (
	"testing"

	"github.com/hydroline/hydroline/pkg/validate"
)

type createOrderInput struct {
	UserID        uint    `json:"userId"        validate:"required"`
	AddressID     uint    `json:"shippingAddress" validate:"required"`
	TotalAmount   float64 `json:"totalAmount"   validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,in=COD,Online"`
	Coupon        string  `json:"coupon"        validate:"nullable,alpha_dash,max=20"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(createOrderInput{
		UserID:        7,
		AddressID:     3,
		TotalAmount:   1499.50,
		PaymentMethod: "Online",
		Coupon:        "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(createOrderInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["userId"]; !ok {
		t.Error("expected userId to be required")
	}
	if _, ok := errs["totalAmount"]; !ok {
		t.Error("expected totalAmount to be required")
	}
}

func TestInRuleKeepsMultiValueParams(t *testing.T) {
	errs := validate.Struct(createOrderInput{
		UserID:        1,
		AddressID:     1,
		TotalAmount:   10,
		PaymentMethod: "Cheque",
	})
	if _, ok := errs["paymentMethod"]; !ok {
		t.Errorf("expected paymentMethod in= violation, got: %v", errs)
	}

	errs = validate.Struct(createOrderInput{
		UserID:        1,
		AddressID:     1,
		TotalAmount:   10,
		PaymentMethod: "COD",
	})
	if validate.HasErrors(errs) {
		t.Errorf("COD should be accepted, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type ratingInput struct {
		Rating int `json:"rating" validate:"required,gte=1,lte=5"`
	}

	if errs := validate.Struct(ratingInput{Rating: 6}); !validate.HasErrors(errs) {
		t.Error("rating 6 should fail lte=5")
	}
	if errs := validate.Struct(ratingInput{Rating: 3}); validate.HasErrors(errs) {
		t.Errorf("rating 3 should pass, got: %v", errs)
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); len(errs) == 0 {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "buyer@example.com"}); len(errs) != 0 {
		t.Errorf("expected valid email, got: %v", errs)
	}
}
