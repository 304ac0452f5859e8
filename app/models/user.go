package models

import "time"

// Roles recognized by the platform.
const (
	RoleFarmer = "Farmer"
	RoleBuyer  = "Buyer"
)

// User is a registered account. The password is stored only as a
// bcrypt hash and never serialized.
type User struct {
	ID           int       `json:"id" bson:"id" validate:"gte=0"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,min=5,max=20"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"passwordHash" validate:"required"`
	Location     string    `json:"location" bson:"location" validate:"required,max=200"`
	Role         string    `json:"role" bson:"role" validate:"required,oneof=Farmer Buyer"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
}

// AuthStatus is the state of the session attached to a request or view.
type AuthStatus int

const (
	AuthLoading AuthStatus = iota
	AuthSignedIn
	AuthSignedOut
)

// AuthState is the explicit authentication context handed to
// controllers and views instead of an ambient current-user global.
type AuthState struct {
	Status AuthStatus
	User   *User
}

// SignedIn builds an AuthState for an authenticated user.
func SignedIn(user *User) AuthState {
	return AuthState{Status: AuthSignedIn, User: user}
}

// SignedOut builds an AuthState with no user attached.
func SignedOut() AuthState {
	return AuthState{Status: AuthSignedOut}
}
