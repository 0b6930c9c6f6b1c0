package handlers

import (
	"net/http"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/repository"
	"solarserver/internal/services/auth"
)

// TokenHandler exchanges a username/password form for a bearer token.
func TokenHandler(users repository.UserRepository, authService *auth.Service, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		password := r.FormValue("password")
		if username == "" || password == "" {
			writeDetail(w, http.StatusBadRequest, "username and password are required")
			return
		}

		user, err := users.GetByUsername(username)
		if err != nil {
			log.Error("Login lookup failed for %s: %v", username, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil || !user.IsActive || !auth.VerifyPassword(user.HashedPassword, password) {
			writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}

		token, err := authService.CreateAccessToken(user.Username, user.Role)
		if err != nil {
			log.Error("Failed to issue token for %s: %v", username, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
