package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"auctionary/internal/auctionerrors"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserIDKey is the gin context key holding the authenticated user's id
const UserIDKey = "user_id"

// Messages shared between handlers and middleware
const (
	MsgExtraFields   = "Extra fields not allowed!"
	MsgUnauthorised  = "Unauthorised!"
	MsgInternalError = "Internal server error!"
)

// HandleBindError sends a 400 describing why the request body or query could not be bound
func HandleBindError(c *gin.Context, handlerName string, err error) {
	message := BindErrorMessage(err)
	utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid request payload: %w", err), message)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// BindErrorMessage turns a binding failure into a client-facing message
func BindErrorMessage(err error) string {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
	)

	switch {
	case errors.As(err, &validationErrs) && len(validationErrs) > 0:
		return validationMessage(validationErrs)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return MsgExtraFields
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%q must be %s", typeErr.Field, describeKind(typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "Malformed JSON body!"
	case errors.Is(err, io.EOF):
		return "Request body is required!"
	default:
		return "Invalid request: " + err.Error()
	}
}

func describeKind(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var contentErr *auctionerrors.ContentError

	switch {
	case errors.Is(err, auctionerrors.ErrItemNotFound):
		return http.StatusNotFound, "Item not found!"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "User not found!"
	case errors.Is(err, auctionerrors.ErrQuestionNotFound):
		return http.StatusNotFound, "Question not found!"

	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, MsgUnauthorised

	case errors.Is(err, auctionerrors.ErrSelfBidForbidden):
		return http.StatusForbidden, "Cannot bid on your own item!"
	case errors.Is(err, auctionerrors.ErrSelfQuestionForbidden):
		return http.StatusForbidden, "Cannot ask a question on your own item!"
	case errors.Is(err, auctionerrors.ErrNotItemOwner):
		return http.StatusForbidden, "Only the item creator can do this!"

	case errors.As(err, &contentErr):
		return http.StatusBadRequest, "Inappropriate language detected in " + contentErr.Field + "!"
	case errors.Is(err, auctionerrors.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already exists!"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid email or password!"
	case errors.Is(err, auctionerrors.ErrInvalidEndDate):
		return http.StatusBadRequest, "End date must be in the future!"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "Bid must be higher than current bid!"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusBadRequest, "Auction has ended!"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "Invalid bid!"
	case errors.Is(err, auctionerrors.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status!"
	case errors.Is(err, auctionerrors.ErrAuthenticationRequired):
		return http.StatusBadRequest, "Authentication required for this status!"
	case errors.Is(err, auctionerrors.ErrInvalidCategory):
		return http.StatusBadRequest, "Invalid category!"

	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// RespondError maps err, writes the error body and logs the failure.
// Client errors are logged at warn level, server errors at error level.
func RespondError(c *gin.Context, handlerName, what string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()

	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+what, fields)
		return
	}
	utils.Warn(handlerName+": "+what, fields)
}

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CurrentUserID returns the authenticated user's id, or 0 for anonymous requests
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
