package web

import (
	"errors"
	"net/http"

	"github.com/zhulik/vote/internal/core"
)

// StatusFor maps service errors to HTTP statuses. Store details never reach
// the client.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidVoteTarget):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
