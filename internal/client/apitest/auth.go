package apitest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.mu.Lock()
	if _, taken := s.findUser(req.Username); taken {
		s.mu.Unlock()
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	u := s.users.insert(user{
		AppUser: models.AppUser{
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		},
		password: req.Password,
	})
	s.mu.Unlock()

	s.issue(w, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	u, ok := s.findUser(req.Username)
	s.mu.Unlock()
	if !ok || u.password != req.Password {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	s.issue(w, u)
}

func (s *Server) issue(w http.ResponseWriter, u user) {
	tok, err := s.sign(u, s.ttl)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "")
		return
	}
	respondJSON(w, http.StatusOK, models.AuthResponse{Token: tok, Username: u.Username})
}
