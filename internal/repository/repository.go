package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"

	model "auctionary/internal/models"
)

// UserRepository stores accounts and their session tokens
type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (int64, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	// SetSessionToken stores token only if the user holds none; it reports whether it did.
	SetSessionToken(ctx context.Context, userID int64, token string) (bool, error)
	GetUserIDBySessionToken(ctx context.Context, token string) (int64, error)
	// ClearSessionToken reports whether a session was removed.
	ClearSessionToken(ctx context.Context, token string) (bool, error)
}

// ItemRepository stores auction listings and answers listing queries
type ItemRepository interface {
	CreateItem(ctx context.Context, item model.Item) (int64, error)
	GetItem(ctx context.Context, itemID int64) (model.Item, error)
	GetItemDetails(ctx context.Context, itemID int64) (model.ItemDetails, error)
	SearchItems(ctx context.Context, filter SearchFilter) ([]model.ItemSummary, error)
	ListSellingItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error)
	ListBiddingItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error)
	ListEndedItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error)
}

// BidRepository stores the append-only bid log
type BidRepository interface {
	// RecordBid appends bid only if its amount beats the item's current bid,
	// returning ErrBidTooLow otherwise.
	RecordBid(ctx context.Context, bid model.Bid) (int64, error)
	GetHighestBid(ctx context.Context, itemID int64) (model.Bid, error)
	GetBidHistory(ctx context.Context, itemID int64) ([]model.BidHistoryEntry, error)
}

// QuestionRepository stores questions and answers about items
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question model.Question) (int64, error)
	GetQuestion(ctx context.Context, questionID int64) (model.Question, error)
	SetAnswer(ctx context.Context, questionID int64, answer string) error
	ListQuestionsForItem(ctx context.Context, itemID int64) ([]model.Question, error)
}

// CategoryRepository stores categories and their association with items
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoriesForItem(ctx context.Context, itemID int64) ([]model.Category, error)
	// ReplaceItemCategories deletes the item's categories and inserts categoryIDs as one unit.
	ReplaceItemCategories(ctx context.Context, itemID int64, categoryIDs []int64) error
}

// SearchFilter selects a page of items. ViewerID is only consulted for
// StatusOpen and StatusBid; CategoryID zero means any category.
type SearchFilter struct {
	Status     model.Status
	ViewerID   int64
	Query      string
	CategoryID int64
	Limit      int
	Offset     int
	Now        int64
}

// SQLRepo implements every repository interface on top of a relational database
type SQLRepo struct {
	db *DB
}

// NewSQLRepo creates a repository backed by db
func NewSQLRepo(db *DB) *SQLRepo {
	return &SQLRepo{db: db}
}

var (
	_ UserRepository     = (*SQLRepo)(nil)
	_ ItemRepository     = (*SQLRepo)(nil)
	_ BidRepository      = (*SQLRepo)(nil)
	_ QuestionRepository = (*SQLRepo)(nil)
	_ CategoryRepository = (*SQLRepo)(nil)
)
