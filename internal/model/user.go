package model

import (
	"strings"
	"time"
	"unicode"
)

const maxUsernameLength = 64

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Data         string    `db:"json_data" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateUserDTO struct {
	Validator
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate accepts an empty password; the service generates one in that case.
func (dto *CreateUserDTO) Validate() map[string]string {
	err := make(map[string]string)

	username := strings.TrimSpace(dto.Username)
	switch {
	case username == "":
		err["username"] = ErrEmptyField
	case len(username) > maxUsernameLength:
		err["username"] = ErrTooLong
	case strings.IndexFunc(dto.Username, unicode.IsSpace) >= 0:
		err["username"] = ErrInvalidField
	}

	if dto.Password != "" && len(dto.Password) < 6 {
		err["password"] = ErrInvalidField
	}

	return err
}

type UserResponse struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	CreatedAt         time.Time `json:"created_at"`
	GeneratedPassword string    `json:"generated_password,omitempty"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
