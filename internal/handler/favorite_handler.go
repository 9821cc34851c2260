package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FavoriteStatusResponse answers whether the viewer has favorited a user.
type FavoriteStatusResponse struct {
	Favorited bool `json:"favorited"`
}

// ListFavorites godoc
// @Summary      List favorites
// @Description  Fetches the public profiles of every user the authenticated user has favorited, in the order they were added.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	profiles, err := h.favorites.ListTargets(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	favorited := true
	userResponses := make([]PublicUserResponse, len(profiles))
	for i := range profiles {
		userResponses[i] = newPublicUserResponse(profiles[i], &favorited)
	}

	c.JSON(http.StatusOK, userResponses)
}

// AddFavorite godoc
// @Summary      Add favorite
// @Description  Adds a user to the authenticated user's favorites. Adding twice is not an error.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Added to favorites"}"
// @Failure      400  {object}  ErrorResponse "Invalid ID or yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /favorites/{id} [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	targetUserID, ok := parseIDParam(c, "id", "target user")
	if !ok {
		return
	}

	if err := h.favorites.Add(c.Request.Context(), viewerID(c), targetUserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

// RemoveFavorite godoc
// @Summary      Remove favorite
// @Description  Removes a user from the authenticated user's favorites. Removing a user who is not a favorite is not an error.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Removed from favorites"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites/{id} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	targetUserID, ok := parseIDParam(c, "id", "target user")
	if !ok {
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), viewerID(c), targetUserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// GetFavoriteStatus godoc
// @Summary      Is favorited
// @Description  Tells whether the authenticated user has favorited the target user.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  FavoriteStatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites/{id} [get]
func (h *Handler) GetFavoriteStatus(c *gin.Context) {
	targetUserID, ok := parseIDParam(c, "id", "target user")
	if !ok {
		return
	}

	favorited, err := h.favorites.IsFavorited(c.Request.Context(), viewerID(c), targetUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoriteStatusResponse{Favorited: favorited})
}
