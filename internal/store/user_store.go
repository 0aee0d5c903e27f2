package store

import (
	"context"
	"time"
)

type UserStore struct {
	db DB
}

const (
	RoleClient   = "CLIENT"
	RoleAdvisor  = "ADVISOR"
	RoleDirector = "DIRECTOR"
)

type User struct {
	ID           string    `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, tx Execer, user User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role)
	return err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (User, error) {
	var row User
	err := s.db.GetContext(ctx, &row, userSelect+` WHERE id = $1`, userID)
	if err != nil {
		return User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (User, error) {
	var row User
	err := s.db.GetContext(ctx, &row, userSelect+` WHERE email = $1`, email)
	if err != nil {
		return User{}, err
	}
	return row, nil
}

func (s *UserStore) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.db.GetContext(ctx, &role, `
		SELECT role
		FROM users
		WHERE id = $1
	`, userID)
	return role, err
}

const userSelect = `
	SELECT id, first_name, last_name, email, password_hash, role, created_at
	FROM users`
