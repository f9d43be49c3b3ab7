package http

import (
	"net/http"

	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	commonhttp "github.com/akarpovich/notes-service/internal/common/http"
	"github.com/akarpovich/notes-service/internal/common/jwtverify"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/user/service"
)

type userEnvelope struct {
	Status string   `json:"status"`
	Data   userData `json:"data"`
}

type userData struct {
	User service.UserResponse `json:"user"`
}

type Handler struct {
	users service.Service
	log   *logger.Logger
}

func NewHandler(users service.Service, log *logger.Logger) *Handler {
	return &Handler{users: users, log: log}
}

func (h *Handler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("GET /api/users/me", gate(http.HandlerFunc(h.me)))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingToken, h.log)
		return
	}

	user, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userEnvelope{Status: "success", Data: userData{User: user}})
}
