package model

import "strings"

type LoginDTO struct {
	Validator
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto *LoginDTO) Validate() map[string]string {
	err := make(map[string]string)
	if strings.TrimSpace(dto.Username) == "" {
		err["username"] = ErrEmptyField
	}

	if dto.Password == "" {
		err["password"] = ErrEmptyField
	}

	return err
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
