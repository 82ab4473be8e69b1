package model

import (
	"bytes"
	"encoding/json"
)

// UpdateDataDTO carries the app's settings blob. Its content is opaque to the server.
type UpdateDataDTO struct {
	Validator
	Data json.RawMessage `json:"data"`
}

func (dto *UpdateDataDTO) Validate() map[string]string {
	err := make(map[string]string)
	if len(bytes.TrimSpace(dto.Data)) == 0 || bytes.Equal(bytes.TrimSpace(dto.Data), []byte("null")) {
		err["data"] = ErrEmptyField
	}
	return err
}

type UpdateStationsDTO struct {
	Validator
	Stations []json.RawMessage `json:"stations"`
}

func (dto *UpdateStationsDTO) Validate() map[string]string {
	err := make(map[string]string)
	if dto.Stations == nil {
		err["stations"] = ErrEmptyField
	}
	return err
}

type DataResponse struct {
	Data json.RawMessage `json:"data"`
}
