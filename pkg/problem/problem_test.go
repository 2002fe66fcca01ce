package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAndWithErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "csv", Message: "required"}}
	p := New(http.StatusBadRequest, "bad-request", "Bad Request", "details").WithErrors(fieldErrors)

	if got, want := p.Type, BaseURI+"/bad-request"; got != want {
		t.Fatalf("unexpected type: got %q want %q", got, want)
	}
	if p.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", p.Status)
	}
	if len(p.Errors) != 1 || p.Errors[0] != fieldErrors[0] {
		t.Fatalf("errors not set: %+v", p.Errors)
	}
}

func TestProblemWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	p := BadRequest("invalid")
	p.Write(resp)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != ContentType {
		t.Fatalf("missing content type: %s", got)
	}

	var decoded Problem
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Title != "Bad Request" || decoded.Detail != "invalid" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		p          *Problem
		wantStatus int
		wantType   string
	}{
		{"not found", NotFound("x"), http.StatusNotFound, BaseURI + "/not-found"},
		{"missing columns", MissingColumns("missing required columns: wake"), http.StatusBadRequest, BaseURI + "/missing-columns"},
		{"no data", NoData("no valid sleep records"), http.StatusUnprocessableEntity, BaseURI + "/no-data"},
		{"validation", ValidationError("x", nil), http.StatusBadRequest, BaseURI + "/validation-error"},
		{"internal", InternalError("x"), http.StatusInternalServerError, BaseURI + "/internal-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.p.Status, tt.wantStatus)
			}
			if tt.p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", tt.p.Type, tt.wantType)
			}
		})
	}
}
