package question

import (
	"context"
	"fmt"

	"auctionary/internal/auctionerrors"
	"auctionary/internal/models"
	"auctionary/internal/profanity"
	"auctionary/internal/repository"
)

// QuestionService gates questions on items and their answers
type QuestionService struct {
	items     repository.ItemRepository
	questions repository.QuestionRepository
	filter    *profanity.Filter
}

// NewQuestionService creates a new QuestionService instance
func NewQuestionService(items repository.ItemRepository, questions repository.QuestionRepository, filter *profanity.Filter) *QuestionService {
	return &QuestionService{
		items:     items,
		questions: questions,
		filter:    filter,
	}
}

// Ask records a question from a user other than the item's creator
func (s *QuestionService) Ask(ctx context.Context, itemID, askerID int64, text string) (int64, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to load item %d: %w", itemID, err)
	}
	if item.CreatorID == askerID {
		return 0, fmt.Errorf("service: %w - user %d owns item %d", auctionerrors.ErrSelfQuestionForbidden, askerID, itemID)
	}
	if err := s.filter.Check(profanity.Field{Name: "question", Text: text}); err != nil {
		return 0, fmt.Errorf("service: %w", err)
	}

	id, err := s.questions.CreateQuestion(ctx, models.Question{
		Question: text,
		AskedBy:  askerID,
		ItemID:   itemID,
	})
	if err != nil {
		return 0, fmt.Errorf("service: failed to create question on item %d: %w", itemID, err)
	}
	return id, nil
}

// Answer sets the answer to a question. Only the item's creator may answer,
// and a later answer replaces an earlier one.
func (s *QuestionService) Answer(ctx context.Context, questionID, responderID int64, text string) error {
	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return fmt.Errorf("service: failed to load question %d: %w", questionID, err)
	}
	if q.ItemCreatorID != responderID {
		return fmt.Errorf("service: %w - user %d cannot answer question %d", auctionerrors.ErrNotItemOwner, responderID, questionID)
	}
	if err := s.filter.Check(profanity.Field{Name: "answer", Text: text}); err != nil {
		return fmt.Errorf("service: %w", err)
	}

	if err := s.questions.SetAnswer(ctx, questionID, text); err != nil {
		return fmt.Errorf("service: failed to answer question %d: %w", questionID, err)
	}
	return nil
}

// ListForItem returns every question on an existing item, newest first
func (s *QuestionService) ListForItem(ctx context.Context, itemID int64) ([]models.Question, error) {
	if _, err := s.items.GetItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("service: failed to load item %d: %w", itemID, err)
	}

	questions, err := s.questions.ListQuestionsForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list questions for item %d: %w", itemID, err)
	}
	return questions, nil
}
