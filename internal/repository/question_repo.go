package repository

import (
	"context"
	"database/sql"
	"fmt"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
)

// CreateQuestion stores an unanswered question and returns its id
func (r *SQLRepo) CreateQuestion(ctx context.Context, question model.Question) (int64, error) {
	var id int64
	err := r.db.conn().queryRow(ctx, `
		INSERT INTO questions (question, asked_by, item_id)
		VALUES (?, ?, ?)
		RETURNING question_id`,
		question.Question, question.AskedBy, question.ItemID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create question: %w", auctionerrors.ErrItemNotFound)
		}
		return 0, fmt.Errorf("create question: %w", err)
	}
	return id, nil
}

// GetQuestion returns a question together with the creator of its item
func (r *SQLRepo) GetQuestion(ctx context.Context, questionID int64) (model.Question, error) {
	var (
		q      model.Question
		answer sql.NullString
	)
	err := r.db.conn().queryRow(ctx, `
		SELECT q.question_id, q.question, q.answer, q.asked_by, q.item_id, i.creator_id
		FROM questions q
		JOIN items i ON i.item_id = q.item_id
		WHERE q.question_id = ?`, questionID,
	).Scan(&q.QuestionID, &q.Question, &answer, &q.AskedBy, &q.ItemID, &q.ItemCreatorID)
	if err != nil {
		if isNoRows(err) {
			return model.Question{}, fmt.Errorf("get question %d: %w", questionID, auctionerrors.ErrQuestionNotFound)
		}
		return model.Question{}, fmt.Errorf("get question %d: %w", questionID, err)
	}
	if answer.Valid {
		q.Answer = &answer.String
	}
	return q, nil
}

// SetAnswer stores the answer to a question, replacing any earlier one
func (r *SQLRepo) SetAnswer(ctx context.Context, questionID int64, answer string) error {
	res, err := r.db.conn().exec(ctx, `UPDATE questions SET answer = ? WHERE question_id = ?`, answer, questionID)
	if err != nil {
		return fmt.Errorf("answer question %d: %w", questionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("answer question %d: %w", questionID, err)
	}
	if n == 0 {
		return fmt.Errorf("answer question %d: %w", questionID, auctionerrors.ErrQuestionNotFound)
	}
	return nil
}

// ListQuestionsForItem returns all questions on an item, newest first
func (r *SQLRepo) ListQuestionsForItem(ctx context.Context, itemID int64) ([]model.Question, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT question_id, question, answer, asked_by, item_id
		FROM questions
		WHERE item_id = ?
		ORDER BY question_id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list questions for item %d: %w", itemID, err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var (
			q      model.Question
			answer sql.NullString
		)
		if err := rows.Scan(&q.QuestionID, &q.Question, &answer, &q.AskedBy, &q.ItemID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if answer.Valid {
			q.Answer = &answer.String
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
