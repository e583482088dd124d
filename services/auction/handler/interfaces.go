package handler

import (
	"context"

	bidding "auctionary/internal/biddingService"
	item "auctionary/internal/itemService"
	model "auctionary/internal/models"
	question "auctionary/internal/questionService"
	user "auctionary/internal/userService"
)

//go:generate mockgen -source=interfaces.go -destination=mock_services.go -package=handler

type UserServiceInterface interface {
	Register(ctx context.Context, in user.RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (user.Session, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID int64) (model.Profile, error)
}

type ItemServiceInterface interface {
	CreateItem(ctx context.Context, in item.CreateItemInput) (item.CreateItemResult, error)
	GetItemDetails(ctx context.Context, itemID int64) (model.ItemDetails, error)
	SetCategories(ctx context.Context, itemID, callerID int64, categoryIDs []int64) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	Search(ctx context.Context, in item.SearchInput) ([]model.ItemSummary, error)
}

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, itemID, bidderID, amount int64) (model.Bid, error)
	GetBidHistory(ctx context.Context, itemID int64) ([]model.BidHistoryEntry, error)
}

type QuestionServiceInterface interface {
	Ask(ctx context.Context, itemID, askerID int64, text string) (int64, error)
	Answer(ctx context.Context, questionID, responderID int64, text string) error
	ListForItem(ctx context.Context, itemID int64) ([]model.Question, error)
}

var (
	_ UserServiceInterface     = (*user.UserService)(nil)
	_ ItemServiceInterface     = (*item.ItemService)(nil)
	_ BiddingServiceInterface  = (*bidding.BiddingService)(nil)
	_ QuestionServiceInterface = (*question.QuestionService)(nil)
)
