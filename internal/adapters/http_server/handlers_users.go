package httpserver

import (
	"net/http"

	"hoteldir/internal/app"
)

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.Users.List(r.Context(), r.URL.Query().Get("search"), pageQuery(r))
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondPage(w, http.StatusOK, toUserDTOs(res.Items), res.Page)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toUserDTO(u))
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.Users.Create(r.Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusCreated, "User created successfully.", toUserDTO(u))
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.Users.Update(r.Context(), id, app.UserUpdateInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "User updated successfully.", toUserDTO(u))
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handlers) updateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	ident, _ := CallerIdentity(r.Context())
	var req updateRoleRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.Users.UpdateRole(r.Context(), ident, id, req.Role)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "User role updated successfully.", toUserDTO(u))
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	ident, _ := CallerIdentity(r.Context())
	u, err := h.Users.Delete(r.Context(), ident, id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "User deleted successfully.", toUserDTO(u))
}
