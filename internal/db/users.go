package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/model"
)

const userColumns = `id, email, hashed_password, display_name, father_name, cnic, address, role, first_login_at, created_at, updated_at`

// inserts a new user, returns the new user ID.
func (s *pgStore) CreateUser(email, hashedPassword, role string, displayName, fatherName, cnic, address *string) (int, error) {
	query := `
	INSERT INTO users (email, hashed_password, role, display_name, father_name, cnic, address, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, email, hashedPassword, role, displayName, fatherName, cnic, address).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by email. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) ListUsers() ([]model.User, error) {
	var out []model.User
	err := s.db.Select(&out, `SELECT `+userColumns+` FROM users ORDER BY id;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return out, nil
}

// updates a user's identity fields and bumps updated_at.
// returns an error if no rows were affected (user ID doesn't exist).
func (s *pgStore) UpdateUserProfile(id int, displayName, fatherName, cnic, address *string) error {
	query := `
	UPDATE users
	SET display_name = $2,
	father_name = $3,
	cnic = $4,
	address = $5,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, displayName, fatherName, cnic, address)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - rows affected")
		return err
	}
	if rows == 0 {
		log.Error().Msg("failed to update user profile - no such user")
		return errors.New("no such user")
	}
	return nil
}

func (s *pgStore) DeleteUser(id int) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("DeleteUser failed")
	}
	return err
}

// stamps first_login_at on the user's first successful login; later logins
// leave the original timestamp untouched. Missed-prayer tracking starts
// counting from this instant.
func (s *pgStore) MarkFirstLogin(id int, at time.Time) error {
	_, err := s.db.Exec(`
	UPDATE users
	SET first_login_at = $2
	WHERE id = $1 AND first_login_at IS NULL;`, id, at)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("MarkFirstLogin failed")
	}
	return err
}
