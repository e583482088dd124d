package bidding

import (
	"context"
	"errors"
	"testing"
	"time"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
	"auctionary/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func fixedClock() time.Time { return fixedNow }

func openItem(itemID, creatorID, startingBid int64) model.Item {
	return model.Item{
		ItemID:      itemID,
		Name:        "Copper lamp",
		Description: "Works",
		StartingBid: startingBid,
		StartDate:   fixedNow.Add(-time.Hour).UnixMilli(),
		EndDate:     fixedNow.Add(time.Hour).UnixMilli(),
		CreatorID:   creatorID,
	}
}

// Tests PlaceBid
func TestBiddingService_PlaceBid(t *testing.T) {
	tests := []struct {
		name          string
		itemID        int64
		bidderID      int64
		amount        int64
		mockSetup     func(items *repository.MockItemRepository, bids *repository.MockBidRepository)
		expectedError error
		expectFailure bool
	}{
		{
			name:     "first_bid_above_starting_bid",
			itemID:   1,
			bidderID: 2,
			amount:   101,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{}, auctionerrors.ErrNoBids)
				bids.EXPECT().RecordBid(gomock.Any(), model.Bid{
					ItemID:    1,
					UserID:    2,
					Amount:    101,
					Timestamp: fixedNow.UnixMilli(),
				}).Return(int64(7), nil)
			},
		},
		{
			name:     "first_bid_equal_to_starting_bid",
			itemID:   1,
			bidderID: 2,
			amount:   100,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{}, auctionerrors.ErrNoBids)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "bid_equal_to_current_bid",
			itemID:   1,
			bidderID: 3,
			amount:   150,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{Amount: 150}, nil)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "bid_below_current_bid",
			itemID:   1,
			bidderID: 3,
			amount:   120,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{Amount: 150}, nil)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "creator_bids_on_own_item",
			itemID:   1,
			bidderID: 9,
			amount:   500,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
			},
			expectedError: auctionerrors.ErrSelfBidForbidden,
		},
		{
			name:     "auction_already_ended",
			itemID:   1,
			bidderID: 2,
			amount:   500,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				ended := openItem(1, 9, 100)
				ended.EndDate = fixedNow.UnixMilli()
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(ended, nil)
			},
			expectedError: auctionerrors.ErrAuctionEnded,
		},
		{
			name:     "item_not_found",
			itemID:   42,
			bidderID: 2,
			amount:   500,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(42)).Return(model.Item{}, auctionerrors.ErrItemNotFound)
			},
			expectedError: auctionerrors.ErrItemNotFound,
		},
		{
			name:          "zero_amount",
			itemID:        1,
			bidderID:      2,
			amount:        0,
			mockSetup:     func(*repository.MockItemRepository, *repository.MockBidRepository) {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "missing_bidder",
			itemID:        1,
			bidderID:      0,
			amount:        10,
			mockSetup:     func(*repository.MockItemRepository, *repository.MockBidRepository) {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:     "lost_race_at_insert",
			itemID:   1,
			bidderID: 2,
			amount:   160,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{Amount: 150}, nil)
				bids.EXPECT().RecordBid(gomock.Any(), gomock.Any()).Return(int64(0), auctionerrors.ErrBidTooLow)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "repo_write_fails",
			itemID:   1,
			bidderID: 2,
			amount:   160,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{Amount: 150}, nil)
				bids.EXPECT().RecordBid(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
			},
			expectFailure: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			items := repository.NewMockItemRepository(ctrl)
			bids := repository.NewMockBidRepository(ctrl)
			tc.mockSetup(items, bids)

			service := NewBiddingService(items, bids, WithClock(fixedClock))
			bid, err := service.PlaceBid(context.Background(), tc.itemID, tc.bidderID, tc.amount)

			if tc.expectedError != nil || tc.expectFailure {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(7), bid.BidID)
			require.Equal(t, tc.itemID, bid.ItemID)
			require.Equal(t, tc.bidderID, bid.UserID)
			require.Equal(t, tc.amount, bid.Amount)
			require.Equal(t, fixedNow.UnixMilli(), bid.Timestamp)
		})
	}
}

// Tests GetBidHistory
func TestBiddingService_GetBidHistory(t *testing.T) {
	history := []model.BidHistoryEntry{
		{ItemID: 1, UserID: 3, Amount: 150, FirstName: "Ada", LastName: "Lovelace"},
		{ItemID: 1, UserID: 2, Amount: 120, FirstName: "Alan", LastName: "Turing"},
	}

	tests := []struct {
		name          string
		itemID        int64
		mockSetup     func(items *repository.MockItemRepository, bids *repository.MockBidRepository)
		expected      []model.BidHistoryEntry
		expectedError error
	}{
		{
			name:   "history_highest_first",
			itemID: 1,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetBidHistory(gomock.Any(), int64(1)).Return(history, nil)
			},
			expected: history,
		},
		{
			name:   "no_bids_yet",
			itemID: 1,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(1)).Return(openItem(1, 9, 100), nil)
				bids.EXPECT().GetBidHistory(gomock.Any(), int64(1)).Return([]model.BidHistoryEntry{}, nil)
			},
			expected: []model.BidHistoryEntry{},
		},
		{
			name:   "unknown_item",
			itemID: 5,
			mockSetup: func(items *repository.MockItemRepository, bids *repository.MockBidRepository) {
				items.EXPECT().GetItem(gomock.Any(), int64(5)).Return(model.Item{}, auctionerrors.ErrItemNotFound)
			},
			expectedError: auctionerrors.ErrItemNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			items := repository.NewMockItemRepository(ctrl)
			bids := repository.NewMockBidRepository(ctrl)
			tc.mockSetup(items, bids)

			service := NewBiddingService(items, bids, WithClock(fixedClock))
			got, err := service.GetBidHistory(context.Background(), tc.itemID)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

// Tests GetHighestBid
func TestBiddingService_GetHighestBid(t *testing.T) {
	t.Run("returns_repository_bid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bids := repository.NewMockBidRepository(ctrl)
		bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{ItemID: 1, UserID: 2, Amount: 300}, nil)

		service := NewBiddingService(repository.NewMockItemRepository(ctrl), bids)
		bid, err := service.GetHighestBid(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, int64(300), bid.Amount)
	})

	t.Run("no_bids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bids := repository.NewMockBidRepository(ctrl)
		bids.EXPECT().GetHighestBid(gomock.Any(), int64(1)).Return(model.Bid{}, auctionerrors.ErrNoBids)

		service := NewBiddingService(repository.NewMockItemRepository(ctrl), bids)
		_, err := service.GetHighestBid(context.Background(), 1)
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)
	})

	t.Run("invalid_item_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewBiddingService(repository.NewMockItemRepository(ctrl), repository.NewMockBidRepository(ctrl))
		_, err := service.GetHighestBid(context.Background(), 0)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)
	})
}
