package handlers

import (
	"encoding/json"
	"net/http"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository"
	"solarserver/internal/services/auth"
)

// CreateUserHandler registers a new account with a hashed password.
func CreateUserHandler(users repository.UserRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			writeDetail(w, http.StatusBadRequest, "username, email and password are required")
			return
		}
		if req.Role == "" {
			req.Role = "worker"
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Error("Failed to hash password for %s: %v", req.Username, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		user := &models.User{
			Username:       req.Username,
			Email:          req.Email,
			HashedPassword: hashed,
			Role:           req.Role,
			IsActive:       true,
		}
		id, err := users.Create(user)
		if err != nil {
			writeDetail(w, http.StatusConflict, "username or email already taken")
			return
		}

		created, err := users.GetByID(id)
		if err != nil || created == nil {
			log.Error("Failed to load created user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// ListUsersHandler returns all accounts.
func ListUsersHandler(users repository.UserRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.GetAll()
		if err != nil {
			log.Error("Failed to list users: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if all == nil {
			all = []models.User{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// GetUserHandler returns one account by id.
func GetUserHandler(users repository.UserRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid user id")
			return
		}
		user, err := users.GetByID(id)
		if err != nil {
			log.Error("Failed to get user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// UpdateUserHandler changes an account's mutable attributes. Empty request
// fields keep their current value.
func UpdateUserHandler(users repository.UserRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid user id")
			return
		}
		user, err := users.GetByID(id)
		if err != nil {
			log.Error("Failed to get user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}

		var req dto.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Role != "" {
			user.Role = req.Role
		}
		if req.Password != "" {
			hashed, err := auth.HashPassword(req.Password)
			if err != nil {
				log.Error("Failed to hash password for user %d: %v", id, err)
				writeDetail(w, http.StatusInternalServerError, "internal server error")
				return
			}
			user.HashedPassword = hashed
		}

		if err := users.Update(user); err != nil {
			log.Error("Failed to update user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		updated, err := users.GetByID(id)
		if err != nil || updated == nil {
			log.Error("Failed to reload user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteUserHandler removes an account.
func DeleteUserHandler(users repository.UserRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid user id")
			return
		}
		user, err := users.GetByID(id)
		if err != nil {
			log.Error("Failed to get user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		if err := users.Delete(id); err != nil {
			log.Error("Failed to delete user %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
