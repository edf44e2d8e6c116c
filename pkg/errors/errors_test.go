package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
		{code: CodeSubmission, status: http.StatusBadGateway, publicMsg: "order submission failed", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestOnlyServerSideCodesMaskTheirMessage(t *testing.T) {
	for code := range metadataByCode {
		masked := code == CodeInternal || code == CodeDependency
		if got := MetadataFor(code).ExposeMessage; got == masked {
			t.Fatalf("code %s expose=%v", code, got)
		}
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	plain := Newf(CodeNotFound, "order %s not found", "1001")
	if plain.Error() != "NOT_FOUND: order 1001 not found" {
		t.Fatalf("unexpected error string %q", plain.Error())
	}
	wrapped := Wrap(CodeDependency, stdErrors.New("dial tcp: refused"), "load cart")
	if wrapped.Error() != "DEPENDENCY_ERROR: load cart: dial tcp: refused" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestIsCodeFollowsWrappedChain(t *testing.T) {
	inner := New(CodeSubmission, "backend said no")
	outer := fmt.Errorf("submit: %w", inner)
	if !IsCode(outer, CodeSubmission) {
		t.Fatalf("expected submission code through wrap")
	}
	if IsCode(outer, CodeValidation) {
		t.Fatalf("unexpected validation match")
	}
	if IsCode(stdErrors.New("plain"), CodeInternal) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("connection refused"), "save cart")
	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d: %v", len(d.Chain), d.Chain)
	}
	if d.PGCode != "" {
		t.Fatalf("expected no pg code, got %q", d.PGCode)
	}
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_key", TableName: "tenants", Message: "duplicate key"}
	d := Dump(Wrap(CodeConflict, pgErr, "insert tenant"))
	if d.PGCode != "23505" || d.PGConstraint != "tenants_slug_key" || d.PGTable != "tenants" {
		t.Fatalf("unexpected pg fields: %+v", d)
	}

	pqErr := &pq.Error{Code: "23503", Constraint: "orders_tenant_id_fkey", Table: "orders"}
	d = Dump(pqErr)
	if d.PGCode != "23503" || d.PGConstraint != "orders_tenant_id_fkey" {
		t.Fatalf("unexpected pq fields: %+v", d)
	}
}

func TestDumpLogFieldsOmitEmptyEntries(t *testing.T) {
	fields := Dump(New(CodeValidation, "bad")).LogFields()
	if fields["error_code"] != string(CodeValidation) {
		t.Fatalf("unexpected code field %v", fields["error_code"])
	}
	for _, key := range []string{"error_chain", "pg_code", "pg_table"} {
		if _, ok := fields[key]; ok {
			t.Fatalf("expected %s to be omitted, got %v", key, fields)
		}
	}

	pgErr := &pgconn.PgError{Code: "23505", TableName: "orders"}
	fields = Dump(Wrap(CodeConflict, pgErr, "insert order")).LogFields()
	if fields["pg_code"] != "23505" || fields["pg_table"] != "orders" {
		t.Fatalf("expected pg fields, got %v", fields)
	}
	if _, ok := fields["error_chain"]; !ok {
		t.Fatalf("expected chain for wrapped error")
	}
}
