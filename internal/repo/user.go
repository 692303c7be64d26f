package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/league-api/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User (passwordHash must already be hashed)
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, email, role string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, role, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash, email, role).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// ==========================
// Get By Username (login path; the only read that loads password_hash)
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, role, created_at
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Role, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// ==========================
// Update User
// Empty role or passwordHash keep the stored value.
// ==========================
func (r *UserRepo) Update(ctx context.Context, id int, username, email, role, passwordHash string) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1,
		    email = $2,
		    role = COALESCE(NULLIF($3, ''), role),
		    password_hash = COALESCE(NULLIF($4, ''), password_hash)
		WHERE id = $5
		RETURNING id, username, email, role, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, email, role, passwordHash, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// ==========================
// Delete User
// ==========================
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	return execAffectingOne(r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

// ==========================
// List Users (newest first)
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, username, email, role, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
