package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

const maxBodySize = 1 << 20

type registerRequest struct {
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	Password            string  `json:"password"`
	FullName            string  `json:"full_name"`
	AccountType         string  `json:"account_type"`
	HousingSize         int     `json:"housing_size"`
	BudgetPref          float64 `json:"budget_pref"`
	DietaryPref         string  `json:"dietary_pref"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
	Location            string  `json:"location"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type userResponse struct {
	ID                  string  `json:"id"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	FullName            string  `json:"full_name,omitempty"`
	IsActive            bool    `json:"is_active"`
	IsSuperuser         bool    `json:"is_superuser"`
	AccountType         string  `json:"account_type,omitempty"`
	HousingSize         int     `json:"housing_size"`
	BudgetPref          float64 `json:"budget_pref"`
	DietaryPref         string  `json:"dietary_pref,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	Location            string  `json:"location,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FullName:            u.FullName,
		IsActive:            u.IsActive,
		IsSuperuser:         u.IsSuperuser,
		AccountType:         u.AccountType,
		HousingSize:         u.HousingSize,
		BudgetPref:          u.BudgetPref,
		DietaryPref:         u.DietaryPref,
		DietaryRestrictions: u.DietaryRestrictions,
		Location:            u.Location,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World!"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	u, err := s.users.Register(r.Context(), models.User{
		Username:            req.Username,
		Email:               req.Email,
		FullName:            req.FullName,
		AccountType:         req.AccountType,
		HousingSize:         req.HousingSize,
		BudgetPref:          req.BudgetPref,
		DietaryPref:         req.DietaryPref,
		DietaryRestrictions: req.DietaryRestrictions,
		Location:            req.Location,
	}, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", u.Username, "id", u.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			unauthorized(w, "Incorrect username or password")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, TokenType: "bearer"})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, TokenType: "bearer"})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.users.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeDetail(w, http.StatusOK, "Successfully logged out")
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}
