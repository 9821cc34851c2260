package handler

import (
	"net/http"

	"secreto/backend/internal/auth"
	"secreto/backend/internal/common"
	"secreto/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	users     service.UserService
	messages  service.MessageService
	favorites service.FavoriteService
}

// New creates a Handler.
func New(users service.UserService, messages service.MessageService, favorites service.FavoriteService) *Handler {
	return &Handler{
		users:     users,
		messages:  messages,
		favorites: favorites,
	}
}

// ErrorResponse represents a generic error response.
type ErrorResponse = common.ErrorResponse

// respondError maps a service error onto its status code. Unexpected errors
// are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := common.StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		common.Abort(c, status, "Internal server error")
		return
	}
	common.Abort(c, status, err.Error())
}

// viewerID returns the authenticated user. Routes behind AuthMiddleware always have one.
func viewerID(c *gin.Context) uuid.UUID {
	userID, _ := auth.CurrentUserID(c)
	return userID
}

func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		common.Abort(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// abortBinding reports a request body that failed to bind or validate.
func abortBinding(c *gin.Context, err error) {
	common.Abort(c, http.StatusBadRequest, err.Error())
}
