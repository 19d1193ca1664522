package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentials(email string) (int64, string, bool, error) {
	var userID int64
	var passwordHash string
	var isActive bool
	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", false, fmt.Errorf("user not found")
		}
		return 0, "", false, err
	}
	return userID, passwordHash, isActive, nil
}

func (r *Repository) GetUserByID(userID int64) (string, bool, error) {
	var email string
	var isActive bool
	query := `SELECT email, is_active FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&email, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return "", false, fmt.Errorf("user not found")
		}
		return "", false, err
	}
	return email, isActive, nil
}

func (r *Repository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Exec(`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`, at, at, userID).Error
}
