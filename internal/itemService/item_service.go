package item

import (
	"context"
	"fmt"
	"time"

	"auctionary/internal/auctionerrors"
	"auctionary/internal/models"
	"auctionary/internal/profanity"
	"auctionary/internal/repository"
	"auctionary/utils"
)

// Search paging defaults
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ItemService handles listing creation, item details, categories and search
type ItemService struct {
	items        repository.ItemRepository
	categories   repository.CategoryRepository
	filter       *profanity.Filter
	now          func() time.Time
	defaultLimit int
	maxLimit     int
}

// Option configures an ItemService
type Option func(*ItemService)

// WithClock overrides the time source used for start dates and status classification
func WithClock(now func() time.Time) Option {
	return func(s *ItemService) {
		s.now = now
	}
}

// WithPageLimits overrides the default and maximum search page sizes
func WithPageLimits(defaultLimit, maxLimit int) Option {
	return func(s *ItemService) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// NewItemService creates a new ItemService instance
func NewItemService(items repository.ItemRepository, categories repository.CategoryRepository, filter *profanity.Filter, opts ...Option) *ItemService {
	s := &ItemService{
		items:        items,
		categories:   categories,
		filter:       filter,
		now:          time.Now,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateItemInput holds a new listing. EndDate is epoch milliseconds.
type CreateItemInput struct {
	CreatorID   int64
	Name        string
	Description string
	StartingBid int64
	EndDate     int64
	Categories  []int64
}

// CreateItemResult reports the created item and, separately, whether
// attaching its categories failed. The item exists either way.
type CreateItemResult struct {
	ItemID      int64
	CategoryErr error
}

// CreateItem persists a new listing starting now, then attaches its categories
func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (CreateItemResult, error) {
	now := s.now().UnixMilli()
	if in.EndDate <= now {
		return CreateItemResult{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidEndDate)
	}
	if in.StartingBid <= 0 {
		return CreateItemResult{}, fmt.Errorf("service: %w - starting bid must be positive", auctionerrors.ErrInvalidBid)
	}

	if err := s.filter.Check(
		profanity.Field{Name: "name", Text: in.Name},
		profanity.Field{Name: "description", Text: in.Description},
	); err != nil {
		return CreateItemResult{}, fmt.Errorf("service: %w", err)
	}

	itemID, err := s.items.CreateItem(ctx, models.Item{
		Name:        in.Name,
		Description: in.Description,
		StartingBid: in.StartingBid,
		StartDate:   now,
		EndDate:     in.EndDate,
		CreatorID:   in.CreatorID,
	})
	if err != nil {
		return CreateItemResult{}, fmt.Errorf("service: failed to create item: %w", err)
	}

	result := CreateItemResult{ItemID: itemID}
	if len(in.Categories) > 0 {
		if err := s.categories.ReplaceItemCategories(ctx, itemID, in.Categories); err != nil {
			result.CategoryErr = fmt.Errorf("service: failed to attach categories to item %d: %w", itemID, err)
			utils.Warn("item created without categories", map[string]any{
				"item_id": itemID,
				"error":   err.Error(),
			})
		}
	}

	return result, nil
}

// GetItemDetails assembles an item with its creator, current bid, holder and categories.
// A failure to load categories leaves them empty rather than failing the lookup.
func (s *ItemService) GetItemDetails(ctx context.Context, itemID int64) (models.ItemDetails, error) {
	details, err := s.items.GetItemDetails(ctx, itemID)
	if err != nil {
		return models.ItemDetails{}, fmt.Errorf("service: failed to get item %d: %w", itemID, err)
	}

	categories, err := s.categories.GetCategoriesForItem(ctx, itemID)
	if err != nil {
		utils.Warn("failed to load item categories", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
		categories = []models.Category{}
	}
	details.Categories = categories

	return details, nil
}

// SetCategories replaces the item's categories. Only the creator may do this.
func (s *ItemService) SetCategories(ctx context.Context, itemID, callerID int64, categoryIDs []int64) error {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("service: failed to load item %d: %w", itemID, err)
	}
	if item.CreatorID != callerID {
		return fmt.Errorf("service: %w - user %d does not own item %d", auctionerrors.ErrNotItemOwner, callerID, itemID)
	}

	if err := s.categories.ReplaceItemCategories(ctx, itemID, categoryIDs); err != nil {
		return fmt.Errorf("service: failed to set categories for item %d: %w", itemID, err)
	}
	return nil
}

// ListCategories returns every category sorted by name
func (s *ItemService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// SearchInput selects a page of listings. ViewerID zero means anonymous.
type SearchInput struct {
	Status     string
	ViewerID   int64
	Query      string
	CategoryID int64
	Limit      int
	Offset     int
}

// Search lists items by status, free text and category
func (s *ItemService) Search(ctx context.Context, in SearchInput) ([]models.ItemSummary, error) {
	status, err := ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if (status == models.StatusOpen || status == models.StatusBid) && in.ViewerID == 0 {
		return nil, fmt.Errorf("service: %w - status %s", auctionerrors.ErrAuthenticationRequired, status)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	items, err := s.items.SearchItems(ctx, repository.SearchFilter{
		Status:     status,
		ViewerID:   in.ViewerID,
		Query:      in.Query,
		CategoryID: in.CategoryID,
		Limit:      limit,
		Offset:     offset,
		Now:        s.now().UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to search items: %w", err)
	}
	return items, nil
}

// ParseStatus maps a query value to a Status; the empty string means all active items
func ParseStatus(raw string) (models.Status, error) {
	switch status := models.Status(raw); status {
	case models.StatusAny, models.StatusOpen, models.StatusBid, models.StatusArchive:
		return status, nil
	default:
		return "", fmt.Errorf("service: %w %q", auctionerrors.ErrInvalidStatus, raw)
	}
}
