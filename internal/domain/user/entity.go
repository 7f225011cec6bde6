package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. The nftHolder flag is a cosmetic wallet-linked status
// that gates the loyalty discount; it carries no settlement semantics.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	nftHolder    bool
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, nftHolder bool) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		nftHolder:    nftHolder,
		isActive:     true,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) NFTHolder() bool       { return u.nftHolder }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
