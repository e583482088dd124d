package repository

import (
	"context"
	"database/sql"
	"fmt"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
)

// CreateUser inserts a new account and returns its id
func (r *SQLRepo) CreateUser(ctx context.Context, user model.User) (int64, error) {
	var id int64
	err := r.db.conn().queryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, salt)
		VALUES (?, ?, ?, ?, ?)
		RETURNING user_id`,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Salt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetUserByID returns the account with the given id
func (r *SQLRepo) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	user, err := scanUser(r.db.conn().queryRow(ctx, `
		SELECT user_id, first_name, last_name, email, password, salt, session_token
		FROM users WHERE user_id = ?`, userID))
	if err != nil {
		if isNoRows(err) {
			return model.User{}, fmt.Errorf("get user %d: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail returns the account registered with email
func (r *SQLRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := scanUser(r.db.conn().queryRow(ctx, `
		SELECT user_id, first_name, last_name, email, password, salt, session_token
		FROM users WHERE email = ?`, email))
	if err != nil {
		if isNoRows(err) {
			return model.User{}, fmt.Errorf("get user by email: %w", auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// SetSessionToken stores token for a user without a live session
func (r *SQLRepo) SetSessionToken(ctx context.Context, userID int64, token string) (bool, error) {
	res, err := r.db.conn().exec(ctx,
		`UPDATE users SET session_token = ? WHERE user_id = ? AND session_token IS NULL`,
		token, userID)
	if err != nil {
		return false, fmt.Errorf("set session token for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set session token for user %d: %w", userID, err)
	}
	return n > 0, nil
}

// GetUserIDBySessionToken resolves a session token to its owner
func (r *SQLRepo) GetUserIDBySessionToken(ctx context.Context, token string) (int64, error) {
	var id int64
	err := r.db.conn().queryRow(ctx, `SELECT user_id FROM users WHERE session_token = ?`, token).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return 0, fmt.Errorf("resolve session: %w", auctionerrors.ErrUnauthorized)
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	return id, nil
}

// ClearSessionToken ends the session identified by token
func (r *SQLRepo) ClearSessionToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.conn().exec(ctx, `UPDATE users SET session_token = NULL WHERE session_token = ?`, token)
	if err != nil {
		return false, fmt.Errorf("clear session token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear session token: %w", err)
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		user  model.User
		token sql.NullString
	)
	err := row.Scan(&user.UserID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Salt, &token)
	if err != nil {
		return model.User{}, err
	}
	if token.Valid {
		user.SessionToken = &token.String
	}
	return user, nil
}
