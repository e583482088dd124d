package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoBids           = errors.New("no bids found for item")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Credential errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Business logic errors
var (
	ErrInvalidBid             = errors.New("invalid bid")
	ErrBidTooLow              = errors.New("bid amount too low")
	ErrSelfBidForbidden       = errors.New("cannot bid on own item")
	ErrAuctionEnded           = errors.New("auction has ended")
	ErrInvalidEndDate         = errors.New("end date must be in the future")
	ErrContentRejected        = errors.New("inappropriate language detected")
	ErrSelfQuestionForbidden  = errors.New("cannot ask a question on own item")
	ErrNotItemOwner           = errors.New("only the item creator can do this")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrAuthenticationRequired = errors.New("authentication required for this status")
)

// ContentError reports which field failed the language check.
type ContentError struct {
	Field string
}

func (e *ContentError) Error() string {
	return ErrContentRejected.Error() + " in " + e.Field
}

// Is lets errors.Is(err, ErrContentRejected) match a *ContentError.
func (e *ContentError) Is(target error) bool {
	return target == ErrContentRejected
}
