package project

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/teampulse/teampulse/internal/transport"
	"github.com/teampulse/teampulse/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetProjects()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreateProject(dto)
	if err != nil {
		h.Logger.Error("create project failed", "error", err, "code", dto.Code)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	p, err := h.Service.GetProject(projectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdateProjectStatus(projectID, body.Status)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	var dto CreateTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateTeam(projectID, dto)
	if err != nil {
		h.Logger.Error("create team failed", "error", err, "project_id", projectID)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetProjectTeams(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	teams, err := h.Service.GetProjectTeams(projectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) GetProjectMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	memberIDs, err := h.Service.GetProjectMembers(projectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string][]int64{"user_ids": memberIDs})
}

func (h *Handler) ReplaceProjectMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id", "invalid project id")
	if !ok {
		return
	}

	var dto ReplaceMembersDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ReplaceProjectMembers(r.Context(), projectID, dto); err != nil {
		h.Logger.Error("replace project members failed", "error", err, "project_id", projectID)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "teamID", "invalid team id")
	if !ok {
		return
	}

	memberIDs, err := h.Service.GetTeamMembers(teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string][]int64{"user_ids": memberIDs})
}

func (h *Handler) ReplaceTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "teamID", "invalid team id")
	if !ok {
		return
	}

	var dto ReplaceMembersDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ReplaceTeamMembers(r.Context(), teamID, dto); err != nil {
		h.Logger.Error("replace team members failed", "error", err, "team_id", teamID)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
