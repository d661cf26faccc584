package permission

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(dto PermissionDTO) (*Permission, error)
	GetAll() ([]*Permission, error)
	Update(id int64, dto PermissionDTO) (*Permission, error)
	Delete(id int64) error
	AssignToUser(userID, permissionID int64) error
	GetAssignedToUser(userID int64) ([]*Permission, error)
	RevokeFromUser(userID, permissionID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto PermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perm, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     true,
		"message":    "Permission created successfully",
		"permission": perm,
	})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.GetAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      true,
		"message":     "All permissions",
		"permissions": permissions,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission ID")
		return
	}

	var dto PermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perm, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     true,
		"message":    "Permission updated successfully",
		"permission": perm,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, true, "Permission deleted successfully")
}

func (h *Handler) grantPair(r *http.Request) (int64, int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	permissionID, err := strconv.ParseInt(chi.URLParam(r, "permissionId"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return userID, permissionID, true
}

func (h *Handler) AssignToUser(w http.ResponseWriter, r *http.Request) {
	userID, permissionID, ok := h.grantPair(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user or permission ID")
		return
	}

	if err := h.Service.AssignToUser(userID, permissionID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, true, "Permission assigned to user successfully")
}

func (h *Handler) IndexForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	permissions, err := h.Service.GetAssignedToUser(userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      true,
		"message":     "Permissions fetched successfully",
		"permissions": permissions,
	})
}

func (h *Handler) RevokeFromUser(w http.ResponseWriter, r *http.Request) {
	userID, permissionID, ok := h.grantPair(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user or permission ID")
		return
	}

	if err := h.Service.RevokeFromUser(userID, permissionID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, true, "Permission revoked from user successfully")
}
