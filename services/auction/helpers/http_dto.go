package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Request DTOs

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateItemRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description" binding:"required"`
	StartingBid int64       `json:"starting_bid" binding:"required,min=1"`
	EndDate     EpochMillis `json:"end_date" binding:"required"`
	Categories  []int64     `json:"categories" binding:"omitempty,dive,min=1"`
}

type SetCategoriesRequest struct {
	Categories []int64 `json:"categories" binding:"required,dive,min=1"`
}

type PlaceBidRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type AskQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

type AnswerQuestionRequest struct {
	AnswerText string `json:"answer_text" binding:"required"`
}

type SearchQuery struct {
	Status   string `form:"status"`
	Q        string `form:"q"`
	Category int64  `form:"category" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// Response DTOs

type UserCreatedResponse struct {
	UserID int64 `json:"user_id"`
}

type ItemCreatedResponse struct {
	ItemID          int64  `json:"item_id"`
	CategoryWarning string `json:"category_warning,omitempty"`
}

type QuestionCreatedResponse struct {
	QuestionID int64 `json:"question_id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// EpochMillis is a timestamp in milliseconds that clients may send either
// as a JSON number or as a string of digits.
type EpochMillis int64

func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("end_date must be a string of digits, got %q", s)
		}
		*e = EpochMillis(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("end_date must be a number or numeric string: %w", err)
	}
	if v, err := n.Int64(); err == nil {
		*e = EpochMillis(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return fmt.Errorf("end_date must be an integer, got %s", n)
	}
	*e = EpochMillis(int64(f))
	return nil
}
