package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auctionary/internal/auctionerrors"
	"auctionary/internal/metrics"
	"auctionary/internal/models"
	"auctionary/internal/passwords"
	"auctionary/internal/repository"
)

// dummySalt is hashed against for unknown emails so both login failures cost one derivation
const dummySalt = "0000000000000000"

// UserService manages accounts, sessions and profiles
type UserService struct {
	users  repository.UserRepository
	items  repository.ItemRepository
	hasher *passwords.Hasher
	now    func() time.Time
}

// Option configures a UserService
type Option func(*UserService)

// WithClock overrides the time source used to split profile listings
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserRepository, items repository.ItemRepository, hasher *passwords.Hasher, opts ...Option) *UserService {
	s := &UserService{
		users:  users,
		items:  items,
		hasher: hasher,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates an account with a freshly salted password hash
func (s *UserService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return 0, fmt.Errorf("service: failed to salt password: %w", err)
	}

	id, err := s.users.CreateUser(ctx, models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: s.hasher.Hash(in.Password, salt),
		Salt:         salt,
	})
	if err != nil {
		return 0, fmt.Errorf("service: failed to register user: %w", err)
	}
	return id, nil
}

// Session is the result of a successful login
type Session struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"session_token"`
}

// Login checks credentials and returns the user's session, minting one if none is live
func (s *UserService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			s.hasher.Hash(password, dummySalt)
			return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
		}
		return Session{}, fmt.Errorf("service: failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	if user.SessionToken != nil {
		return Session{UserID: user.UserID, Token: *user.SessionToken}, nil
	}

	token, err := passwords.GenerateSessionToken()
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to mint session token: %w", err)
	}

	stored, err := s.users.SetSessionToken(ctx, user.UserID, token)
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to store session: %w", err)
	}
	if stored {
		metrics.SessionEventsTotal.WithLabelValues(metrics.SessionLogin).Inc()
		return Session{UserID: user.UserID, Token: token}, nil
	}

	// a concurrent login stored its token first
	current, err := s.users.GetUserByID(ctx, user.UserID)
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to reload user %d: %w", user.UserID, err)
	}
	if current.SessionToken == nil {
		return Session{}, fmt.Errorf("service: session for user %d vanished during login", user.UserID)
	}
	return Session{UserID: user.UserID, Token: *current.SessionToken}, nil
}

// Logout ends the session identified by token
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("service: %w", auctionerrors.ErrUnauthorized)
	}

	cleared, err := s.users.ClearSessionToken(ctx, token)
	if err != nil {
		return fmt.Errorf("service: failed to end session: %w", err)
	}
	if !cleared {
		return fmt.Errorf("service: %w", auctionerrors.ErrUnauthorized)
	}

	metrics.SessionEventsTotal.WithLabelValues(metrics.SessionLogout).Inc()
	return nil
}

// ResolveSession maps a token to its user id, or ErrUnauthorized
func (s *UserService) ResolveSession(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("service: %w", auctionerrors.ErrUnauthorized)
	}
	id, err := s.users.GetUserIDBySessionToken(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("service: %w", err)
	}
	return id, nil
}

// GetProfile returns the user with their running, bid-on and finished auctions
func (s *UserService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to get user %d: %w", userID, err)
	}

	now := s.now().UnixMilli()

	selling, err := s.items.ListSellingItems(ctx, userID, now)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to list selling items: %w", err)
	}
	bidding, err := s.items.ListBiddingItems(ctx, userID, now)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to list bidding items: %w", err)
	}
	ended, err := s.items.ListEndedItems(ctx, userID, now)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to list ended items: %w", err)
	}

	return models.Profile{
		UserID:        user.UserID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Selling:       selling,
		BiddingOn:     bidding,
		AuctionsEnded: ended,
	}, nil
}
