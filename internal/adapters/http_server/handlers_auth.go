package httpserver

import "net/http"

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.Auth.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusCreated, "User registered successfully.", toUserDTO(u))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  loginUserDTO `json:"user"`
}

type loginUserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	res, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Login successful.", loginResponse{
		Token: res.Token,
		User: loginUserDTO{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
			Role:     string(res.User.Role),
		},
	})
}
