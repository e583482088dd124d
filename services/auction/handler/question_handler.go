package handler

import (
	"net/http"

	model "auctionary/internal/models"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	service QuestionServiceInterface
}

func NewQuestionHandler(service QuestionServiceInterface) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// AskQuestionHandler handles POST /item/:item_id/question
func (h *QuestionHandler) AskQuestionHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	var req helpers.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AskQuestionHandler", err)
		return
	}

	askerID := helpers.CurrentUserID(c)
	questionID, err := h.service.Ask(c.Request.Context(), itemID, askerID, req.QuestionText)
	if err != nil {
		helpers.RespondError(c, "AskQuestionHandler", "failed to ask question", err, map[string]any{
			"item_id": itemID,
			"user_id": askerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.QuestionCreatedResponse{QuestionID: questionID})
	helpers.LogSuccess("AskQuestionHandler", "question asked", map[string]any{
		"question_id": questionID,
		"item_id":     itemID,
	})
}

// AnswerQuestionHandler handles POST /question/:question_id
func (h *QuestionHandler) AnswerQuestionHandler(c *gin.Context) {
	questionID, ok := helpers.ParseID(c, "question_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Question not found!")
		return
	}

	var req helpers.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AnswerQuestionHandler", err)
		return
	}

	responderID := helpers.CurrentUserID(c)
	if err := h.service.Answer(c.Request.Context(), questionID, responderID, req.AnswerText); err != nil {
		helpers.RespondError(c, "AnswerQuestionHandler", "failed to answer question", err, map[string]any{
			"question_id": questionID,
			"user_id":     responderID,
		})
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Answer added successfully!")
	helpers.LogSuccess("AnswerQuestionHandler", "question answered", map[string]any{"question_id": questionID})
}

// ListQuestionsHandler handles GET /item/:item_id/question
func (h *QuestionHandler) ListQuestionsHandler(c *gin.Context) {
	itemID, ok := helpers.ParseID(c, "item_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "Item not found!")
		return
	}

	questions, err := h.service.ListForItem(c.Request.Context(), itemID)
	if err != nil {
		helpers.RespondError(c, "ListQuestionsHandler", "failed to list questions", err, map[string]any{"item_id": itemID})
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}
	utils.JSONResponse(c, http.StatusOK, questions)
}
