package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		code    int
		message string
	}{
		{
			name:    "Unauthorized",
			result:  failure.Unauthorized("invalid signature"),
			code:    http.StatusUnauthorized,
			message: "invalid signature",
		},
		{
			name:    "BadRequestFromString",
			result:  failure.BadRequestFromString("missing booking id"),
			code:    http.StatusBadRequest,
			message: "missing booking id",
		},
		{
			name:    "NotFound",
			result:  failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "InvalidState",
			result:  failure.InvalidState("booking has no payment intent"),
			code:    http.StatusConflict,
			message: "booking has no payment intent",
		},
		{
			name:    "InvalidArgument",
			result:  failure.InvalidArgument("refund exceeds refundable amount"),
			code:    http.StatusBadRequest,
			message: "refund exceeds refundable amount",
		},
		{
			name:    "UpstreamUnavailable",
			result:  failure.UpstreamUnavailable("dashboard unreachable"),
			code:    http.StatusBadGateway,
			message: "dashboard unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.result)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil error")
	}

	result := failure.BadRequest(errors.New("validation failed"))

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusBadRequest || f.Message != "validation failed" {
		t.Errorf("unexpected failure %+v", f)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
		},
		{
			name: "failure",
			err:  failure.NotFound("package not found"),
			code: http.StatusNotFound,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("creating booking: %w", failure.NotFound("package not found")),
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}
