package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/teampulse/teampulse/internal/transport"
	"github.com/teampulse/teampulse/pkg/logger"
)

type ServiceAPI interface {
	CreateModule(dto CreateModuleDTO) (*Module, error)
	CreatePermission(dto CreatePermissionDTO) (*Permission, error)
	DeactivateModule(moduleID int64) error
	DeactivatePermission(permissionID int64) error
	GetModules() ([]*Module, error)
	GetModulePermissions(moduleID int64) ([]*Permission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.GetModules()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, modules)
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var dto CreateModuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.Service.CreateModule(dto)
	if err != nil {
		h.Logger.Error("create module failed", "error", err, "code", dto.Code)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, module)
}

func (h *Handler) GetModulePermissions(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid module id")
		return
	}

	permissions, err := h.Service.GetModulePermissions(moduleID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permission, err := h.Service.CreatePermission(dto)
	if err != nil {
		h.Logger.Error("create permission failed", "error", err, "name", dto.Name)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, permission)
}

func (h *Handler) DeactivateModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid module id")
		return
	}

	if err := h.Service.DeactivateModule(moduleID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeactivatePermission(w http.ResponseWriter, r *http.Request) {
	permissionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	if err := h.Service.DeactivatePermission(permissionID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
