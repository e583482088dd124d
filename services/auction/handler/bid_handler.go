package handler

import (
	"net/http"

	model "auctionary/internal/models"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /item/:item_id/bid.
// Bids on an item whose end date has passed are refused with 400 "Auction has ended!".
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bidderID := helpers.CurrentUserID(c)
	bid, err := h.service.PlaceBid(c.Request.Context(), itemID, bidderID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", "failed to place bid", err, map[string]any{
			"item_id": itemID,
			"user_id": bidderID,
			"amount":  req.Amount,
		})
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "Bid placed successfully!")
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": bid.UserID,
		"amount":  bid.Amount,
	})
}

// GetBidHistoryHandler handles GET /item/:item_id/bid
func (h *BiddingHandler) GetBidHistoryHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	history, err := h.service.GetBidHistory(c.Request.Context(), itemID)
	if err != nil {
		helpers.RespondError(c, "GetBidHistoryHandler", "failed to get bid history", err, map[string]any{"item_id": itemID})
		return
	}

	if history == nil {
		history = []model.BidHistoryEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, history)
	helpers.LogSuccess("GetBidHistoryHandler", "bid history retrieved", map[string]any{
		"item_id": itemID,
		"count":   len(history),
	})
}
