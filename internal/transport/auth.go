package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.Created(w, authResponse{Token: token, User: u})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, authResponse{Token: token, User: u})
}
