package user

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/plankt0n/streamplay-api/internal/storage"
	"github.com/plankt0n/streamplay-api/pkg/security"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

const generatedPasswordLength = 12

// defaultData seeds every new account with the app's default settings and stations.
//
//go:embed template.json
var defaultData []byte

var emptyObject = json.RawMessage(`{}`)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrInvalidData   = errors.New("data is not valid json")
)

type Storage interface {
	CreateUser(ctx context.Context, username, passwordHash, data string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UpdateUserData(ctx context.Context, id int64, data string) error
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	log = *logger.Log
	log = log.With().Str("name", "user-service").Logger()

	return &Service{storage: storage}
}

// Create adds a user seeded with the default data. When dto.Password is empty a
// password is generated and returned once in the response.
func (s *Service) Create(ctx context.Context, dto model.CreateUserDTO) (*model.UserResponse, error) {
	password := dto.Password
	generated := password == ""
	if generated {
		var err error
		if password, err = security.GeneratePassword(generatedPasswordLength); err != nil {
			return nil, errors.Wrap(err, "generate password")
		}
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var data bytes.Buffer
	if err := json.Compact(&data, defaultData); err != nil {
		return nil, errors.Wrap(err, "compact default data")
	}

	u, err := s.storage.CreateUser(ctx, dto.Username, hash, data.String())
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotUnique) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "create user")
	}

	log.Info().Int64("id", u.ID).Str("username", u.Username).Msg("user created")

	res := model.NewUserResponse(u)
	if generated {
		res.GeneratedPassword = password
	}

	return &res, nil
}

func (s *Service) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	res := make([]model.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, model.NewUserResponse(&users[i]))
	}

	return res, nil
}

// Delete removes the user. Tokens already issued to it stay valid until they expire.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return notFound(err, "delete user")
	}

	log.Info().Int64("id", id).Msg("user deleted")
	return nil
}

// GetData returns the stored blob, or an empty object when it is not valid JSON.
func (s *Service) GetData(ctx context.Context, id int64) (json.RawMessage, error) {
	u, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "get user")
	}

	if !json.Valid([]byte(u.Data)) {
		log.Warn().Int64("id", id).Msg("stored data is not valid json")
		return emptyObject, nil
	}

	return json.RawMessage(u.Data), nil
}

// UpdateData replaces the whole blob.
func (s *Service) UpdateData(ctx context.Context, id int64, data json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, ErrInvalidData
	}

	if err := s.storage.UpdateUserData(ctx, id, buf.String()); err != nil {
		return nil, notFound(err, "update user data")
	}

	return json.RawMessage(buf.Bytes()), nil
}

// UpdateStations replaces only the "stations" key and keeps the rest of the blob.
func (s *Service) UpdateStations(ctx context.Context, id int64, stations []json.RawMessage) (json.RawMessage, error) {
	u, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "get user")
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(u.Data), &doc); err != nil || doc == nil {
		doc = map[string]json.RawMessage{}
	}

	if stations == nil {
		stations = []json.RawMessage{}
	}
	encoded, err := json.Marshal(stations)
	if err != nil {
		return nil, ErrInvalidData
	}
	doc["stations"] = encoded

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode data")
	}

	if err := s.storage.UpdateUserData(ctx, id, string(out)); err != nil {
		return nil, notFound(err, "update user data")
	}

	return out, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, storage.ErrEntityNotFound) {
		return ErrUserNotFound
	}
	return errors.Wrap(err, msg)
}
