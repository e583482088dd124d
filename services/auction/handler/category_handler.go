package handler

import (
	"net/http"

	model "auctionary/internal/models"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

// ListCategoriesHandler handles GET /categories
func (h *ItemHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListCategoriesHandler", "failed to list categories", err, nil)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	utils.JSONResponse(c, http.StatusOK, categories)
}

// SetCategoriesHandler handles PUT /item/:item_id/categories
func (h *ItemHandler) SetCategoriesHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	var req helpers.SetCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetCategoriesHandler", err)
		return
	}

	callerID := helpers.CurrentUserID(c)
	if err := h.service.SetCategories(c.Request.Context(), itemID, callerID, req.Categories); err != nil {
		helpers.RespondError(c, "SetCategoriesHandler", "failed to set categories", err, map[string]any{
			"item_id": itemID,
			"user_id": callerID,
		})
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Categories updated successfully!")
	helpers.LogSuccess("SetCategoriesHandler", "categories replaced", map[string]any{
		"item_id":    itemID,
		"categories": req.Categories,
	})
}
