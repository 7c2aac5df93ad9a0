package domain

import "testing"

func validAddContactRequest() AddContactRequest {
	return AddContactRequest{
		UserID:  "u1",
		Name:    "María",
		Phone:   "+522381112233",
		Message: "¡Ayuda! Estoy en {location}",
	}
}

func TestAddContactRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddContactRequest)
		valid  bool
	}{
		{"valid", func(r *AddContactRequest) {}, true},
		{"empty name", func(r *AddContactRequest) { r.Name = "" }, false},
		{"bad phone", func(r *AddContactRequest) { r.Phone = "555" }, false},
		{"missing placeholder", func(r *AddContactRequest) { r.Message = "help me" }, false},
		{"placeholder only", func(r *AddContactRequest) { r.Message = "{location}" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAddContactRequest()
			tt.mutate(&req)
			req.Normalize()
			err := req.Validate()
			if tt.valid && err != nil {
				t.Fatalf("Expected valid request, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatal("Expected validation error")
			}
		})
	}
}

func TestAddContactRequest_DefaultRelationship(t *testing.T) {
	req := validAddContactRequest()
	req.Normalize()
	if req.Relationship != DefaultRelationship {
		t.Fatalf("Expected default relationship %q, got %q", DefaultRelationship, req.Relationship)
	}

	req = validAddContactRequest()
	req.Relationship = "Madre"
	req.Normalize()
	if req.Relationship != "Madre" {
		t.Fatalf("Expected explicit relationship to survive, got %q", req.Relationship)
	}
}

func TestUpdateContactRequest_RequiresContactID(t *testing.T) {
	req := UpdateContactRequest{
		Name:    "María",
		Phone:   "+522381112233",
		Message: "voy a {location}",
	}
	req.Normalize()
	if err := req.Validate(); err == nil {
		t.Fatal("Expected error for missing contact id")
	}

	req.ContactID = "c1"
	if err := req.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}
}

func TestParseAlertStatus(t *testing.T) {
	for _, s := range []string{"active", "resolved", "cancelled"} {
		if _, ok := ParseAlertStatus(s); !ok {
			t.Fatalf("Expected %q to parse", s)
		}
	}
	for _, s := range []string{"", "done", "ACTIVE", "closed"} {
		if _, ok := ParseAlertStatus(s); ok {
			t.Fatalf("Expected %q to be rejected", s)
		}
	}
}
