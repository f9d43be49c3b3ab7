package http

import (
	"net/http"

	"github.com/akarpovich/notes-service/internal/auth/service"
	commonhttp "github.com/akarpovich/notes-service/internal/common/http"
	"github.com/akarpovich/notes-service/internal/common/jwtverify"
	"github.com/akarpovich/notes-service/internal/common/logger"
	userservice "github.com/akarpovich/notes-service/internal/user/service"
)

type registerRequest struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userEnvelope struct {
	Status string   `json:"status"`
	Data   userData `json:"data"`
}

type userData struct {
	User userservice.UserResponse `json:"user"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

// Register mounts the auth routes. Logout sits behind the gate: a request
// without a valid token has no session to end.
func (h *Handler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("GET /api/auth/logout", gate(http.HandlerFunc(h.logout)))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userEnvelope{Status: "success", Data: userData{User: user}})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     jwtverify.CookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(result.ExpiresIn.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Status: "success", Token: result.Token})
}

// logout clears the cookie with a negative max-age; tokens are stateless so
// there is nothing to revoke server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtverify.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	commonhttp.WriteJSON(w, http.StatusOK, statusResponse{Status: "success"})
}
