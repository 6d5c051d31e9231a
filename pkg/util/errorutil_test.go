package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewQuotaExceeded(3)
	mapped := ToDomainError(fmt.Errorf("wrapped: %w", original))
	if mapped.Code != "QUOTA_EXCEEDED" {
		t.Errorf("code = %s, want QUOTA_EXCEEDED", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusForbidden {
		t.Errorf("status = %d, want 403", mapped.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" {
		t.Errorf("code = %s, want NOT_FOUND", mapped.Code)
	}
}

func TestToDomainErrorHidesInternalDetail(t *testing.T) {
	mapped := ToDomainError(errors.New("connection to 10.0.0.5 refused"))
	if mapped.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %s, want INTERNAL_ERROR", mapped.Code)
	}
	if mapped.Message != "internal server error" {
		t.Errorf("message leaks detail: %q", mapped.Message)
	}
}

func TestInvalidCredentialsShape(t *testing.T) {
	a := ToDomainError(NewInvalidCredentials())
	b := ToDomainError(NewInvalidCredentials())
	if a.Code != b.Code || a.Message != b.Message || a.HTTPStatus != b.HTTPStatus {
		t.Error("invalid-credentials errors are distinguishable")
	}
}
