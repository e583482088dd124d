package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
	"auctionary/internal/profanity"
	"auctionary/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestService(ctrl *gomock.Controller, opts ...Option) (*ItemService, *repository.MockItemRepository, *repository.MockCategoryRepository) {
	items := repository.NewMockItemRepository(ctrl)
	categories := repository.NewMockCategoryRepository(ctrl)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewItemService(items, categories, profanity.NewFilter(), opts...), items, categories
}

func TestItemService_CreateItem(t *testing.T) {
	future := fixedNow.Add(time.Hour).UnixMilli()

	tests := []struct {
		name          string
		input         CreateItemInput
		mockSetup     func(items *repository.MockItemRepository, categories *repository.MockCategoryRepository)
		expectedID    int64
		expectedError error
		expectFailure bool
		categoryError error
	}{
		{
			name: "creates_item_starting_now",
			input: CreateItemInput{
				CreatorID: 3, Name: "Lamp", Description: "Copper", StartingBid: 100, EndDate: future,
			},
			mockSetup: func(items *repository.MockItemRepository, _ *repository.MockCategoryRepository) {
				items.EXPECT().CreateItem(gomock.Any(), model.Item{
					Name:        "Lamp",
					Description: "Copper",
					StartingBid: 100,
					StartDate:   fixedNow.UnixMilli(),
					EndDate:     future,
					CreatorID:   3,
				}).Return(int64(11), nil)
			},
			expectedID: 11,
		},
		{
			name: "attaches_categories",
			input: CreateItemInput{
				CreatorID: 3, Name: "Lamp", Description: "Copper", StartingBid: 100, EndDate: future,
				Categories: []int64{1, 3},
			},
			mockSetup: func(items *repository.MockItemRepository, categories *repository.MockCategoryRepository) {
				items.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(int64(12), nil)
				categories.EXPECT().ReplaceItemCategories(gomock.Any(), int64(12), []int64{1, 3}).Return(nil)
			},
			expectedID: 12,
		},
		{
			name: "category_failure_keeps_item",
			input: CreateItemInput{
				CreatorID: 3, Name: "Lamp", Description: "Copper", StartingBid: 100, EndDate: future,
				Categories: []int64{99},
			},
			mockSetup: func(items *repository.MockItemRepository, categories *repository.MockCategoryRepository) {
				items.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(int64(13), nil)
				categories.EXPECT().ReplaceItemCategories(gomock.Any(), int64(13), []int64{99}).
					Return(auctionerrors.ErrInvalidCategory)
			},
			expectedID:    13,
			categoryError: auctionerrors.ErrInvalidCategory,
		},
		{
			name: "end_date_now_rejected",
			input: CreateItemInput{
				CreatorID: 3, Name: "Lamp", Description: "Copper", StartingBid: 100, EndDate: fixedNow.UnixMilli(),
			},
			mockSetup:     func(*repository.MockItemRepository, *repository.MockCategoryRepository) {},
			expectedError: auctionerrors.ErrInvalidEndDate,
		},
		{
			name: "profane_name_rejected",
			input: CreateItemInput{
				CreatorID: 3, Name: "shit lamp", Description: "Copper", StartingBid: 100, EndDate: future,
			},
			mockSetup:     func(*repository.MockItemRepository, *repository.MockCategoryRepository) {},
			expectedError: auctionerrors.ErrContentRejected,
		},
		{
			name: "repository_failure",
			input: CreateItemInput{
				CreatorID: 3, Name: "Lamp", Description: "Copper", StartingBid: 100, EndDate: future,
			},
			mockSetup: func(items *repository.MockItemRepository, _ *repository.MockCategoryRepository) {
				items.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			expectFailure: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service, items, categories := newTestService(ctrl)
			tc.mockSetup(items, categories)

			result, err := service.CreateItem(context.Background(), tc.input)
			if tc.expectFailure {
				require.Error(t, err)
				return
			}
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedID, result.ItemID)
			if tc.categoryError != nil {
				require.ErrorIs(t, result.CategoryErr, tc.categoryError)
			} else {
				require.NoError(t, result.CategoryErr)
			}
		})
	}
}

func TestItemService_ProfaneDescriptionNamesField(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _, _ := newTestService(ctrl)

	_, err := service.CreateItem(context.Background(), CreateItemInput{
		CreatorID:   3,
		Name:        "Lamp",
		Description: "a shit lamp",
		StartingBid: 1,
		EndDate:     fixedNow.Add(time.Minute).UnixMilli(),
	})

	var contentErr *auctionerrors.ContentError
	require.True(t, errors.As(err, &contentErr))
	require.Equal(t, "description", contentErr.Field)
}

func TestItemService_GetItemDetails(t *testing.T) {
	t.Run("adds_categories", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, items, categories := newTestService(ctrl)

		items.EXPECT().GetItemDetails(gomock.Any(), int64(4)).Return(model.ItemDetails{ItemID: 4, CurrentBid: 100}, nil)
		categories.EXPECT().GetCategoriesForItem(gomock.Any(), int64(4)).
			Return([]model.Category{{CategoryID: 2, Name: "Helium"}}, nil)

		details, err := service.GetItemDetails(context.Background(), 4)
		require.NoError(t, err)
		require.Equal(t, []model.Category{{CategoryID: 2, Name: "Helium"}}, details.Categories)
	})

	t.Run("category_lookup_failure_is_not_fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, items, categories := newTestService(ctrl)

		items.EXPECT().GetItemDetails(gomock.Any(), int64(4)).Return(model.ItemDetails{ItemID: 4}, nil)
		categories.EXPECT().GetCategoriesForItem(gomock.Any(), int64(4)).Return(nil, errors.New("boom"))

		details, err := service.GetItemDetails(context.Background(), 4)
		require.NoError(t, err)
		require.Empty(t, details.Categories)
		require.NotNil(t, details.Categories)
	})

	t.Run("not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, items, _ := newTestService(ctrl)

		items.EXPECT().GetItemDetails(gomock.Any(), int64(4)).Return(model.ItemDetails{}, auctionerrors.ErrItemNotFound)

		_, err := service.GetItemDetails(context.Background(), 4)
		require.ErrorIs(t, err, auctionerrors.ErrItemNotFound)
	})
}

func TestItemService_SetCategories(t *testing.T) {
	t.Run("owner_replaces_set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, items, categories := newTestService(ctrl)

		items.EXPECT().GetItem(gomock.Any(), int64(4)).Return(model.Item{ItemID: 4, CreatorID: 3}, nil)
		categories.EXPECT().ReplaceItemCategories(gomock.Any(), int64(4), []int64{2}).Return(nil)

		require.NoError(t, service.SetCategories(context.Background(), 4, 3, []int64{2}))
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, items, _ := newTestService(ctrl)

		items.EXPECT().GetItem(gomock.Any(), int64(4)).Return(model.Item{ItemID: 4, CreatorID: 3}, nil)

		err := service.SetCategories(context.Background(), 4, 8, []int64{2})
		require.ErrorIs(t, err, auctionerrors.ErrNotItemOwner)
	})
}

func TestItemService_Search(t *testing.T) {
	tests := []struct {
		name          string
		input         SearchInput
		expected      *repository.SearchFilter
		expectedError error
	}{
		{
			name:  "defaults_to_active_items",
			input: SearchInput{},
			expected: &repository.SearchFilter{
				Status: model.StatusAny, Limit: DefaultLimit, Now: fixedNow.UnixMilli(),
			},
		},
		{
			name:  "archive_is_public",
			input: SearchInput{Status: "ARCHIVE", Query: "lamp", CategoryID: 3, Limit: 5, Offset: 10},
			expected: &repository.SearchFilter{
				Status: model.StatusArchive, Query: "lamp", CategoryID: 3, Limit: 5, Offset: 10, Now: fixedNow.UnixMilli(),
			},
		},
		{
			name:  "open_with_viewer",
			input: SearchInput{Status: "OPEN", ViewerID: 7},
			expected: &repository.SearchFilter{
				Status: model.StatusOpen, ViewerID: 7, Limit: DefaultLimit, Now: fixedNow.UnixMilli(),
			},
		},
		{
			name:  "limit_is_capped",
			input: SearchInput{Status: "BID", ViewerID: 7, Limit: 5000},
			expected: &repository.SearchFilter{
				Status: model.StatusBid, ViewerID: 7, Limit: MaxLimit, Now: fixedNow.UnixMilli(),
			},
		},
		{
			name:          "open_without_viewer",
			input:         SearchInput{Status: "OPEN"},
			expectedError: auctionerrors.ErrAuthenticationRequired,
		},
		{
			name:          "bid_without_viewer",
			input:         SearchInput{Status: "BID"},
			expectedError: auctionerrors.ErrAuthenticationRequired,
		},
		{
			name:          "unknown_status",
			input:         SearchInput{Status: "open", ViewerID: 7},
			expectedError: auctionerrors.ErrInvalidStatus,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service, items, _ := newTestService(ctrl)
			if tc.expected != nil {
				items.EXPECT().SearchItems(gomock.Any(), *tc.expected).Return([]model.ItemSummary{{ItemID: 1}}, nil)
			}

			got, err := service.Search(context.Background(), tc.input)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 1)
		})
	}
}

func TestItemService_WithPageLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, items, _ := newTestService(ctrl, WithPageLimits(25, 50))

	items.EXPECT().SearchItems(gomock.Any(), repository.SearchFilter{
		Status: model.StatusArchive, Limit: 25, Now: fixedNow.UnixMilli(),
	}).Return([]model.ItemSummary{}, nil)

	_, err := service.Search(context.Background(), SearchInput{Status: "ARCHIVE"})
	require.NoError(t, err)
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]model.Status{
		"":        model.StatusAny,
		"OPEN":    model.StatusOpen,
		"BID":     model.StatusBid,
		"ARCHIVE": model.StatusArchive,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseStatus("CLOSED")
	require.ErrorIs(t, err, auctionerrors.ErrInvalidStatus)
}
