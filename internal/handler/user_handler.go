package handler

import (
	"net/http"
	"time"

	"secreto/backend/internal/auth"
	"secreto/backend/internal/models"
	"secreto/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// SignupInput defines the structure for user registration.
type SignupInput struct {
	Username    string  `json:"username" binding:"required" example:"bob"`
	Password    string  `json:"password" binding:"required,min=8" example:"password123"`
	Name        *string `json:"name" example:"Bob"`
	Email       *string `json:"email" binding:"omitempty,email" example:"bob@example.com"`
	PhoneNumber *string `json:"phone_number" example:"+15550100"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"bob"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateProfileInput lists the editable profile fields. Omitted fields are kept,
// empty strings clear them.
type UpdateProfileInput struct {
	Name      *string `json:"name" example:"Bob"`
	Bio       *string `json:"bio" example:"Ask me anything"`
	AvatarURL *string `json:"avatar_url" example:"https://cdn.example.com/bob.png"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username" example:"bob"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatar_url"`
	IsPrime     bool      `json:"is_prime"`
	IsFavorited *bool     `json:"is_favorited,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID            uuid.UUID        `json:"id"`
	Username      string           `json:"username" example:"bob"`
	Name          *string          `json:"name"`
	Bio           *string          `json:"bio"`
	AvatarURL     *string          `json:"avatar_url"`
	IsPrime       bool             `json:"is_prime"`
	Email         *string          `json:"email"`
	PhoneNumber   *string          `json:"phone_number"`
	CreatedAt     time.Time        `json:"created_at"`
	MessageCounts map[string]int64 `json:"message_counts"`
}

// PaginatedUserResponse defines the structure for a paginated list of users.
type PaginatedUserResponse = PaginatedResponse[PublicUserResponse]

// endregion

// region --- Auth Handlers ---

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Registration Info"
// @Success      201  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username already registered"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortBinding(c, err)
		return
	}

	token, err := h.users.Signup(c.Request.Context(), service.SignupInput{
		Username:    input.Username,
		Password:    input.Password,
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Incorrect username or password"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortBinding(c, err)
		return
	}

	token, err := h.users.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for username"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedUserResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	page, limit := pageParams(c)

	profiles, total, err := h.users.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PublicUserResponse, len(profiles))
	for i := range profiles {
		responses[i] = newPublicUserResponse(profiles[i], nil)
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}

// GetUserByHandle godoc
// @Summary      Get a public profile
// @Description  Retrieves the public profile behind a username. Authenticated viewers also get is_favorited.
// @Tags         users
// @Produce      json
// @Param        handle  path      string  true  "Username"
// @Success      200     {object}  PublicUserResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /users/{handle} [get]
func (h *Handler) GetUserByHandle(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.users.GetByHandle(ctx, c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}

	var favorited *bool
	if viewer, ok := auth.CurrentUserID(c); ok && viewer != profile.ID {
		isFav, err := h.favorites.IsFavorited(ctx, viewer, profile.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		favorited = &isFav
	}

	c.JSON(http.StatusOK, newPublicUserResponse(*profile, favorited))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user, with per-bucket message counts.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.users.Me(ctx, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := h.messages.Counts(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPrivateUserResponse(user, counts))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Updates name, bio and avatar URL of the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortBinding(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.UpdateProfile(ctx, viewerID(c), service.ProfileUpdate{
		Name:      input.Name,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := h.messages.Counts(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPrivateUserResponse(user, counts))
}

// endregion

// region --- Helpers ---

func newPublicUserResponse(profile models.PublicProfile, favorited *bool) PublicUserResponse {
	return PublicUserResponse{
		ID:          profile.ID,
		Username:    profile.Username,
		Name:        profile.Name,
		Bio:         profile.Bio,
		AvatarURL:   profile.AvatarURL,
		IsPrime:     profile.IsPrime,
		IsFavorited: favorited,
	}
}

func newPrivateUserResponse(user *models.User, counts map[models.MessageStatus]int64) PrivateUserResponse {
	messageCounts := make(map[string]int64, len(counts))
	for status, n := range counts {
		messageCounts[string(status)] = n
	}

	return PrivateUserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Name:          user.Name,
		Bio:           user.Bio,
		AvatarURL:     user.AvatarURL,
		IsPrime:       user.IsPrime,
		Email:         user.Email,
		PhoneNumber:   user.PhoneNumber,
		CreatedAt:     user.CreatedAt,
		MessageCounts: messageCounts,
	}
}

// endregion
