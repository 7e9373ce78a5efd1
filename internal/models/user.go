package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles an account can hold.
const (
	RoleUser   = "user"
	RoleLawyer = "lawyer"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Hide from JSON responses
	Phone     string             `bson:"phone" json:"phone"`
	Picture   string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Timezone  string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Role      string             `bson:"role" json:"role"` // "user" or "lawyer"
	Company   []string           `bson:"company,omitempty" json:"company,omitempty"`
	Agreement *Agreement         `bson:"agreement,omitempty" json:"agreement,omitempty"`
	History   []HistoryEvent     `bson:"history,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the shape returned to clients. The password digest is
// excluded by construction, not by serialization tags.
type PublicProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Picture   string    `json:"picture,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	Role      string    `json:"role"`
	Company   []string  `json:"company,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Picture:   u.Picture,
		Timezone:  u.Timezone,
		Role:      u.Role,
		Company:   u.Company,
		CreatedAt: u.CreatedAt,
	}
}

// SessionToken is the credential envelope returned by register and login.
// ExpiresIn is the access token validity in seconds.
type SessionToken struct {
	TokenType    string `json:"tokenType"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
