package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	TargetRole string  `json:"target_role" validate:"required"`
	Status     string  `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
	Score      float64 `json:"score" validate:"gte=0,lte=1"`
}

func TestValidator_AllowsValidStruct(t *testing.T) {
	v := New()
	req := sampleRequest{
		Email:      "casey@example.com",
		Password:   "s3cret-pass",
		TargetRole: "Data Analyst",
		Status:     "in_progress",
		Score:      0.5,
	}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	req := sampleRequest{Email: "casey@example.com", Password: "s3cret-pass"}

	err := v.Validate(&req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "target_role is required") {
		t.Errorf("expected json field name in message, got %q", err.Error())
	}
}

func TestValidator_JoinsMultipleFailures(t *testing.T) {
	v := New()
	req := sampleRequest{Email: "not-an-email", Password: "short", TargetRole: "Data Analyst"}

	err := v.Validate(&req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("missing email failure in %q", msg)
	}
	if !strings.Contains(msg, "password must be at least 8 characters") {
		t.Errorf("missing password failure in %q", msg)
	}
}

func TestValidator_DescribesOneOf(t *testing.T) {
	v := New()
	req := sampleRequest{
		Email:      "casey@example.com",
		Password:   "s3cret-pass",
		TargetRole: "Data Analyst",
		Status:     "done",
	}

	err := v.Validate(&req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "status must be one of: not_started, in_progress, completed") {
		t.Errorf("unexpected oneof message %q", err.Error())
	}
}

func TestValidator_DescribesRangeRules(t *testing.T) {
	v := New()
	req := sampleRequest{
		Email:      "casey@example.com",
		Password:   "s3cret-pass",
		TargetRole: "Data Analyst",
		Score:      1.5,
	}

	err := v.Validate(&req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "score must be 1 or less") {
		t.Errorf("unexpected range message %q", err.Error())
	}
}

func TestValidator_IgnoresNonStructValues(t *testing.T) {
	v := New()

	if err := v.Validate(nil); err != nil {
		t.Errorf("nil value: %v", err)
	}
	if err := v.Validate(map[string]any{"k": "v"}); err != nil {
		t.Errorf("map value: %v", err)
	}
	if err := v.Validate([]string{"a"}); err != nil {
		t.Errorf("slice value: %v", err)
	}
	var req *sampleRequest
	if err := v.Validate(req); err != nil {
		t.Errorf("nil struct pointer: %v", err)
	}
}
