package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auctionary/internal/auctionerrors"
	"auctionary/internal/metrics"
	"auctionary/internal/models"
	"auctionary/internal/repository"
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	items repository.ItemRepository
	bids  repository.BidRepository
	now   func() time.Time
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithClock overrides the time source used to stamp bids and detect ended auctions
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) {
		s.now = now
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(items repository.ItemRepository, bids repository.BidRepository, opts ...Option) *BiddingService {
	s := &BiddingService{
		items: items,
		bids:  bids,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid validates and records a user's bid for an item
func (s *BiddingService) PlaceBid(ctx context.Context, itemID, bidderID, amount int64) (models.Bid, error) {
	bid, err := s.placeBid(ctx, itemID, bidderID, amount)
	if err != nil {
		metrics.BidsTotal.WithLabelValues(metrics.BidRejected).Inc()
		return models.Bid{}, err
	}
	metrics.BidsTotal.WithLabelValues(metrics.BidAccepted).Inc()
	return bid, nil
}

func (s *BiddingService) placeBid(ctx context.Context, itemID, bidderID, amount int64) (models.Bid, error) {
	if itemID <= 0 || bidderID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - missing item or bidder", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to load item %d: %w", itemID, err)
	}

	if err := s.validateBid(ctx, item, bidderID, amount); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		ItemID:    itemID,
		UserID:    bidderID,
		Amount:    amount,
		Timestamp: s.now().UnixMilli(),
	}

	bid.BidID, err = s.bids.RecordBid(ctx, bid)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for item %d by user %d: %w", itemID, bidderID, err)
	}

	return bid, nil
}

// validateBid checks ownership, timing and bid ordering for an existing item
func (s *BiddingService) validateBid(ctx context.Context, item models.Item, bidderID, amount int64) error {
	if item.CreatorID == bidderID {
		return fmt.Errorf("service: %w - user %d owns item %d", auctionerrors.ErrSelfBidForbidden, bidderID, item.ItemID)
	}
	if item.EndDate <= s.now().UnixMilli() {
		return fmt.Errorf("service: %w - item %d", auctionerrors.ErrAuctionEnded, item.ItemID)
	}

	current, err := s.currentBid(ctx, item)
	if err != nil {
		return err
	}
	if amount <= current {
		return fmt.Errorf("service: %w - current bid is %d", auctionerrors.ErrBidTooLow, current)
	}
	return nil
}

// currentBid is the highest bid on item, or its starting bid while unbid
func (s *BiddingService) currentBid(ctx context.Context, item models.Item) (int64, error) {
	highest, err := s.GetHighestBid(ctx, item.ItemID)
	if err == nil {
		return highest.Amount, nil
	}
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return item.StartingBid, nil
	}
	return 0, err
}

// GetHighestBid returns the highest bid for an item, or ErrNoBids
func (s *BiddingService) GetHighestBid(ctx context.Context, itemID int64) (models.Bid, error) {
	if itemID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - invalid item ID", auctionerrors.ErrInvalidBid)
	}

	highest, err := s.bids.GetHighestBid(ctx, itemID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get highest bid for item %d: %w", itemID, err)
	}

	return highest, nil
}

// GetBidHistory returns all bids for an existing item, highest first
func (s *BiddingService) GetBidHistory(ctx context.Context, itemID int64) ([]models.BidHistoryEntry, error) {
	if _, err := s.items.GetItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("service: failed to load item %d: %w", itemID, err)
	}

	history, err := s.bids.GetBidHistory(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for item %d: %w", itemID, err)
	}

	return history, nil
}
