package domain

import (
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	BirthDate    time.Time `json:"birth_date"`
	Location     string    `json:"location"`
	BloodType    string    `json:"blood_type"`
	Allergies    []string  `json:"allergies"`
	Gender       string    `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithContacts is the full profile shape: the user record plus its
// emergency contact list.
type UserWithContacts struct {
	User
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
}

// UserInfo is the profile shape returned to clients, without credentials.
type UserInfo struct {
	ID        string   `json:"id"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	BloodType string   `json:"blood_type"`
	Allergies []string `json:"allergies"`
	Role      string   `json:"role"`
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		BloodType: u.BloodType,
		Allergies: u.Allergies,
		Role:      u.Role,
	}
}

type RegisterRequest struct {
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Location  string     `json:"location,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	BloodType string     `json:"blood_type"`
	Allergies []string   `json:"allergies,omitempty"`
	Gender    string     `json:"gender,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      *UserInfo `json:"user"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordConfirmRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type CreateAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const DefaultLocation = "Tehuacán, Puebla"

var bloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"O+": true, "O-": true,
	"AB+": true, "AB-": true,
}

var genders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

var (
	// Regional mobile numbers: country code +52 followed by exactly ten digits.
	phoneRegex = regexp.MustCompile(`^\+52[0-9]{10}$`)

	// Student accounts must use their institutional address.
	studentEmailRegex = regexp.MustCompile(`^a[0-9]{10}@alumno\.uttehuacan\.edu\.mx$`)
	anyEmailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidEmail applies the role-dependent email policy: admins may use any
// syntactically valid address, ordinary users must use the institutional
// student pattern.
func ValidEmail(email, role string) bool {
	if role == RoleAdmin {
		return anyEmailRegex.MatchString(email)
	}
	return studentEmailRegex.MatchString(email)
}

func ValidBloodType(bt string) bool {
	return bloodTypes[bt]
}

func ValidGender(g string) bool {
	return genders[g]
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Location == "" {
		r.Location = DefaultLocation
	}
	if r.Allergies == nil {
		r.Allergies = []string{}
	}
}

func (r *RegisterRequest) Validate() error {
	if r.FullName == "" {
		return Invalid("full name is required")
	}
	if !ValidPhone(r.Phone) {
		return Invalid("invalid phone format: must be +52 followed by 10 digits")
	}
	if !ValidEmail(r.Email, RoleUser) {
		return Invalid("invalid email: students must use their institutional address")
	}
	if len(r.Password) < 8 {
		return Invalid("password must be at least 8 characters")
	}
	if !ValidBloodType(r.BloodType) {
		return Invalid("invalid blood type")
	}
	if r.Gender != "" && !ValidGender(r.Gender) {
		return Invalid("invalid gender")
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return Invalid("email is required")
	}
	if r.Password == "" {
		return Invalid("password is required")
	}
	return nil
}

func (r *ResetPasswordConfirmRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Code = strings.TrimSpace(r.Code)
}

func (r *ResetPasswordConfirmRequest) Validate() error {
	if r.Email == "" {
		return Invalid("email is required")
	}
	if r.Code == "" {
		return Invalid("code is required")
	}
	if len(r.NewPassword) < 8 {
		return Invalid("password must be at least 8 characters")
	}
	return nil
}

func (r *UpdateUserRequest) Validate() error {
	if r.FullName == "" || r.Phone == "" || r.Location == "" {
		return Invalid("full name, phone and location are required")
	}
	if !ValidPhone(r.Phone) {
		return Invalid("invalid phone format: must be +52 followed by 10 digits")
	}
	return nil
}

func (r *CreateAdminRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *CreateAdminRequest) Validate() error {
	if r.FullName == "" {
		return Invalid("full name is required")
	}
	if !ValidEmail(r.Email, RoleAdmin) {
		return Invalid("invalid email format")
	}
	if !ValidPhone(r.Phone) {
		return Invalid("invalid phone format: must be +52 followed by 10 digits")
	}
	if len(r.Password) < 8 {
		return Invalid("password must be at least 8 characters")
	}
	return nil
}
