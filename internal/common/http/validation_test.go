package http

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Avatar   string `json:"avatar"`
}

func TestValidateStruct_AllFieldsPresent(t *testing.T) {
	err := ValidateStruct(sampleRequest{Username: "alice", Password: "p1"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateStruct_NamesMissingFields(t *testing.T) {
	err := ValidateStruct(sampleRequest{Avatar: "a.png"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if err.Code() != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %q", err.Code())
	}
	if err.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", err.HTTPStatus())
	}
	msg := err.Message()
	if !strings.Contains(msg, "username") || !strings.Contains(msg, "password") {
		t.Errorf("expected both missing fields named, got %q", msg)
	}
	if strings.Contains(msg, "avatar") {
		t.Errorf("avatar was present and must not be reported, got %q", msg)
	}
}

func TestValidateStruct_EmptyStringIsMissing(t *testing.T) {
	err := ValidateStruct(sampleRequest{Username: "alice", Password: ""})
	if err == nil {
		t.Fatal("expected a validation error for an empty required field")
	}
	if !strings.Contains(err.Message(), "password") {
		t.Errorf("expected password reported, got %q", err.Message())
	}
}
