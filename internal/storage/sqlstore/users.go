package sqlstore

import (
	"context"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/plankt0n/streamplay-api/internal/storage"
)

const usersTable = "users"

var userColumns = []string{"id", "username", "password_hash", "json_data", "created_at"}

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash, data string) (*model.User, error) {
	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto(usersTable).
		Cols("username", "password_hash", "json_data", "created_at").
		Values(username, passwordHash, data, time.Now().UTC().Truncate(time.Second))
	ib.SQL("RETURNING id")

	query, args := ib.BuildWithFlavor(s.flavor)

	var id int64
	conn := s.db.GetConn()
	if err := conn.GetContext(ctx, &id, query, args...); err != nil {
		return nil, mapError(err, "create user")
	}

	return s.GetUserByID(ctx, id)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(userColumns...).
		From(usersTable).
		Where(sb.Equal("username", username))

	query, args := sb.BuildWithFlavor(s.flavor)

	var user model.User
	conn := s.db.GetConn()
	if err := conn.GetContext(ctx, &user, query, args...); err != nil {
		return nil, mapError(err, "get user by username")
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(userColumns...).
		From(usersTable).
		Where(sb.Equal("id", id))

	query, args := sb.BuildWithFlavor(s.flavor)

	var user model.User
	conn := s.db.GetConn()
	if err := conn.GetContext(ctx, &user, query, args...); err != nil {
		return nil, mapError(err, "get user by id")
	}

	return &user, nil
}

// ListUsers returns every user, newest first.
func (s *Storage) ListUsers(ctx context.Context) ([]model.User, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(userColumns...).
		From(usersTable).
		OrderBy("created_at DESC", "id DESC")

	query, args := sb.BuildWithFlavor(s.flavor)

	users := []model.User{}
	conn := s.db.GetConn()
	if err := conn.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, mapError(err, "list users")
	}

	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	db := sqlbuilder.NewDeleteBuilder()
	db.DeleteFrom(usersTable).Where(db.Equal("id", id))

	query, args := db.BuildWithFlavor(s.flavor)

	conn := s.db.GetConn()
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete user")
	}

	return expectAffected(res.RowsAffected())
}

// UpdateUserData replaces the stored settings blob of a user.
func (s *Storage) UpdateUserData(ctx context.Context, id int64, data string) error {
	ub := sqlbuilder.NewUpdateBuilder()
	ub.Update(usersTable).
		Set(ub.Assign("json_data", data)).
		Where(ub.Equal("id", id))

	query, args := ub.BuildWithFlavor(s.flavor)

	conn := s.db.GetConn()
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "update user data")
	}

	return expectAffected(res.RowsAffected())
}

func expectAffected(n int64, err error) error {
	if err != nil {
		return mapError(err, "rows affected")
	}
	if n == 0 {
		return storage.ErrEntityNotFound
	}
	return nil
}
