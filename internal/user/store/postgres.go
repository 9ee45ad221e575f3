// Package store persists user accounts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"admingeo/internal/user/models"
	"admingeo/pkg/platform/sentinel"
)

const userSelect = `
SELECT u.id, u.first_name, u.last_name, u.email, u.phone_number, u.password,
       u.is_active, u.created_at, u.updated_at, u.deleted_at
FROM users u`

// Postgres persists users in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+`
WHERE u.deleted_at IS NULL
ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		user.Password = ""
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.findOne(ctx, userSelect+`
WHERE u.deleted_at IS NULL AND u.id = $1`, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// FindByEmailWithPassword returns the row including the password hash.
// Only the login path should use it.
func (s *Postgres) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, userSelect+`
WHERE u.deleted_at IS NULL AND u.email = $1`, email)
}

func (s *Postgres) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO users (first_name, last_name, email, phone_number, password)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.Password).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update writes the full merged record; the service layer has already
// overlaid partial fields and re-hashed the password when it changed.
func (s *Postgres) Update(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE users
SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
    password = $6, is_active = $7, updated_at = now()
WHERE deleted_at IS NULL AND id = $1`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		user.Password, user.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, user.ID)
}

func (s *Postgres) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE users
SET deleted_at = now(), updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var deletedAt sql.NullTime
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.Password, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return &u, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
