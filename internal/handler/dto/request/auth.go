package request

import (
	"coworkhub/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return newCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	NFTHolder bool   `json:"nft_holder"`
}

func (r *RegisterRequest) ToDomain() (user.Credentials, error) {
	return newCredentials(r.Email, r.Password)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func newCredentials(emailStr, passwordStr string) (user.Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return user.Credentials{}, err
	}
	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return user.Credentials{}, err
	}
	return user.NewCredentials(email, password), nil
}
