package domain

import (
	"errors"
	"testing"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid", "+522381234567", true},
		{"missing country code", "2381234567", false},
		{"wrong country code", "+12381234567", false},
		{"too short", "+52238123456", false},
		{"too long", "+5223812345678", false},
		{"letters", "+52238123456a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPhone(tt.phone); got != tt.want {
				t.Fatalf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestValidEmail_ByRole(t *testing.T) {
	tests := []struct {
		name  string
		email string
		role  string
		want  bool
	}{
		{"student institutional", "a2023310001@alumno.uttehuacan.edu.mx", RoleUser, true},
		{"student wrong domain", "a2023310001@gmail.com", RoleUser, false},
		{"student missing a prefix", "2023310001@alumno.uttehuacan.edu.mx", RoleUser, false},
		{"student short matricula", "a202331001@alumno.uttehuacan.edu.mx", RoleUser, false},
		{"admin any address", "staff@uttehuacan.edu.mx", RoleAdmin, true},
		{"admin gmail", "admin@gmail.com", RoleAdmin, true},
		{"admin malformed", "not-an-email", RoleAdmin, false},
		{"admin missing domain", "admin@", RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidEmail(tt.email, tt.role); got != tt.want {
				t.Fatalf("ValidEmail(%q, %q) = %v, want %v", tt.email, tt.role, got, tt.want)
			}
		})
	}
}

func TestValidBloodType(t *testing.T) {
	for _, bt := range []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"} {
		if !ValidBloodType(bt) {
			t.Fatalf("Expected %q to be valid", bt)
		}
	}
	for _, bt := range []string{"C+", "ab+", "O", "", "AB"} {
		if ValidBloodType(bt) {
			t.Fatalf("Expected %q to be invalid", bt)
		}
	}
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FullName:  "Ana López",
		Phone:     "+522381234567",
		Email:     "a2023310001@alumno.uttehuacan.edu.mx",
		Password:  "secret123",
		BloodType: "O+",
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		valid  bool
	}{
		{"valid", func(r *RegisterRequest) {}, true},
		{"empty name", func(r *RegisterRequest) { r.FullName = "" }, false},
		{"bad phone", func(r *RegisterRequest) { r.Phone = "12345" }, false},
		{"non-institutional email", func(r *RegisterRequest) { r.Email = "ana@gmail.com" }, false},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, false},
		{"bad blood type", func(r *RegisterRequest) { r.BloodType = "X+" }, false},
		{"bad gender", func(r *RegisterRequest) { r.Gender = "unknown" }, false},
		{"valid gender", func(r *RegisterRequest) { r.Gender = "female" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)
			req.Normalize()
			err := req.Validate()
			if tt.valid && err != nil {
				t.Fatalf("Expected valid request, got %v", err)
			}
			if !tt.valid {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Expected ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestRegisterRequest_Normalize(t *testing.T) {
	req := validRegisterRequest()
	req.Email = "  A2023310001@ALUMNO.UTTEHUACAN.EDU.MX "
	req.Location = ""
	req.Allergies = nil
	req.Normalize()

	if req.Email != "a2023310001@alumno.uttehuacan.edu.mx" {
		t.Fatalf("Expected lowercased trimmed email, got %q", req.Email)
	}
	if req.Location != DefaultLocation {
		t.Fatalf("Expected default location, got %q", req.Location)
	}
	if req.Allergies == nil {
		t.Fatal("Expected allergies to be normalized to an empty slice")
	}
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	valid := UpdateUserRequest{FullName: "Ana", Phone: "+522381234567", Location: "Tehuacán"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}

	for _, req := range []UpdateUserRequest{
		{Phone: "+522381234567", Location: "X"},
		{FullName: "Ana", Location: "X"},
		{FullName: "Ana", Phone: "+522381234567"},
		{FullName: "Ana", Phone: "bad", Location: "X"},
	} {
		if err := req.Validate(); err == nil {
			t.Fatalf("Expected error for %+v", req)
		}
	}
}
