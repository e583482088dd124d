package handler

import (
	"net/http"

	item "auctionary/internal/itemService"
	model "auctionary/internal/models"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service ItemServiceInterface
}

func NewItemHandler(service ItemServiceInterface) *ItemHandler {
	return &ItemHandler{service: service}
}

// CreateItemHandler handles POST /item
func (h *ItemHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	creatorID := helpers.CurrentUserID(c)
	result, err := h.service.CreateItem(c.Request.Context(), item.CreateItemInput{
		CreatorID:   creatorID,
		Name:        req.Name,
		Description: req.Description,
		StartingBid: req.StartingBid,
		EndDate:     int64(req.EndDate),
		Categories:  req.Categories,
	})
	if err != nil {
		helpers.RespondError(c, "CreateItemHandler", "failed to create item", err, map[string]any{"user_id": creatorID})
		return
	}

	resp := helpers.ItemCreatedResponse{ItemID: result.ItemID}
	if result.CategoryErr != nil {
		_, msg := helpers.MapErrorToHTTP(result.CategoryErr)
		resp.CategoryWarning = "Item created but categories were not saved: " + msg
	}

	utils.JSONResponse(c, http.StatusCreated, resp)
	helpers.LogSuccess("CreateItemHandler", "item created", map[string]any{
		"item_id":          result.ItemID,
		"user_id":          creatorID,
		"categories_saved": result.CategoryErr == nil,
	})
}

// GetItemHandler handles GET /item/:item_id
func (h *ItemHandler) GetItemHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	details, err := h.service.GetItemDetails(c.Request.Context(), itemID)
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", "failed to get item", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, details)
}

// SearchHandler handles GET /search
func (h *ItemHandler) SearchHandler(c *gin.Context) {
	var q helpers.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "SearchHandler", err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), item.SearchInput{
		Status:     q.Status,
		ViewerID:   helpers.CurrentUserID(c),
		Query:      q.Q,
		CategoryID: q.Category,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		helpers.RespondError(c, "SearchHandler", "search failed", err, map[string]any{"status": q.Status})
		return
	}

	if items == nil {
		items = []model.ItemSummary{}
	}

	utils.JSONResponse(c, http.StatusOK, items)
	helpers.LogSuccess("SearchHandler", "search completed", map[string]any{
		"status": q.Status,
		"count":  len(items),
	})
}
