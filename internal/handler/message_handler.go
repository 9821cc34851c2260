package handler

import (
	"net/http"
	"time"

	"secreto/backend/internal/auth"
	"secreto/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// SubmitMessageInput is the body of an anonymous or signed-in submission.
type SubmitMessageInput struct {
	ReceiverUsername string `json:"receiver_username" binding:"required" example:"bob"`
	Content          string `json:"content" binding:"required" example:"You are awesome"`
}

// TransitionInput moves a message into another bucket.
type TransitionInput struct {
	Status models.MessageStatus `json:"status" binding:"required" enums:"inbox,public,favorite,deleted" example:"public"`
}

// MessageResponse never carries the sender.
type MessageResponse struct {
	ID        uuid.UUID            `json:"id"`
	Content   string               `json:"content" example:"You are awesome"`
	Status    models.MessageStatus `json:"status" example:"inbox"`
	CreatedAt time.Time            `json:"created_at"`
}

func newMessageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	}
}

func newMessageResponses(msgs []models.Message) []MessageResponse {
	responses := make([]MessageResponse, len(msgs))
	for i := range msgs {
		responses[i] = newMessageResponse(msgs[i])
	}
	return responses
}

// endregion

// SubmitMessage godoc
// @Summary      Send a message
// @Description  Posts a message to a user's inbox. No login is needed; a logged-in sender is recorded but never shown.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        input body SubmitMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver not found"
// @Router       /messages [post]
func (h *Handler) SubmitMessage(c *gin.Context) {
	var input SubmitMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortBinding(c, err)
		return
	}

	var senderID *uuid.UUID
	if userID, ok := auth.CurrentUserID(c); ok {
		senderID = &userID
	}

	msg, err := h.messages.Submit(c.Request.Context(), input.ReceiverUsername, input.Content, senderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newMessageResponse(*msg))
}

// ListMessages godoc
// @Summary      List my messages
// @Description  Lists the authenticated user's messages in one bucket, newest first. Without status every bucket is listed.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Bucket"  Enums(inbox, public, favorite)
// @Success      200     {array}   MessageResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.messages.List(c.Request.Context(), viewerID(c), models.MessageStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMessageResponses(msgs))
}

// ListPublicMessages godoc
// @Summary      List a user's public messages
// @Description  Lists the messages a user has made public, newest first. No login needed.
// @Tags         messages
// @Produce      json
// @Param        handle  path      string  true  "Username"
// @Success      200     {array}   MessageResponse
// @Failure      404     {object}  ErrorResponse "User not found"
// @Router       /users/{handle}/messages [get]
func (h *Handler) ListPublicMessages(c *gin.Context) {
	msgs, err := h.messages.PublicList(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMessageResponses(msgs))
}

// TransitionMessage godoc
// @Summary      Move a message
// @Description  Moves one of the authenticated user's messages into another bucket.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string           true  "Message ID"
// @Param        input  body      TransitionInput  true  "Target bucket"
// @Success      200    {object}  MessageResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse "Not the receiver"
// @Failure      404    {object}  ErrorResponse "Message not found"
// @Router       /messages/{id}/status [put]
func (h *Handler) TransitionMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id", "message")
	if !ok {
		return
	}

	var input TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortBinding(c, err)
		return
	}

	msg, err := h.messages.Transition(c.Request.Context(), messageID, viewerID(c), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMessageResponse(*msg))
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Removes one of the authenticated user's messages. It disappears from every list.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  map[string]string "{"message": "Message deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the receiver"
// @Failure      404  {object}  ErrorResponse "Message not found"
// @Router       /messages/{id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id", "message")
	if !ok {
		return
	}

	if err := h.messages.Remove(c.Request.Context(), messageID, viewerID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
