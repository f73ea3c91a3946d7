package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{apperror.ErrInvalidCell, http.StatusBadRequest},
	{apperror.ErrInvalidUsername, http.StatusBadRequest},

	{apperror.ErrInvalidToken, http.StatusUnauthorized},

	{apperror.ErrNotAdmin, http.StatusForbidden},
	{apperror.ErrSpectating, http.StatusForbidden},

	{apperror.ErrRoomNotFound, http.StatusNotFound},
	{apperror.ErrNotInRoom, http.StatusNotFound},
	{apperror.ErrNotFound, http.StatusNotFound},

	{apperror.ErrAlreadyInGame, http.StatusConflict},
	{apperror.ErrAlreadyInRoom, http.StatusConflict},
	{apperror.ErrRoomFull, http.StatusConflict},
	{apperror.ErrRoomNotWaiting, http.StatusConflict},
	{apperror.ErrStakeUnavailable, http.StatusConflict},
	{apperror.ErrNotYourTurn, http.StatusConflict},
	{apperror.ErrCellOccupied, http.StatusConflict},
	{apperror.ErrGameFinished, http.StatusConflict},
	{apperror.ErrGameIsNotStarted, http.StatusConflict},
}

func statusFor(err error) int {
	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			return candidate.status
		}
	}

	return http.StatusInternalServerError
}

// fail writes the error response. Unknown errors are logged and hidden from the client.
func (that *Server) fail(c *gin.Context, method string, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		c.JSON(status, errorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}
