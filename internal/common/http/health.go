package http

import (
	"net/http"
)

const healthMessage = "Simple CRUD API with Go, pgx and PostgreSQL"

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, healthResponse{Status: "success", Message: healthMessage})
	}
}
