package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"barangay-backend/internal/middleware"
	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
	"barangay-backend/pkg/utils"
)

// uploadLimit caps project file uploads at 20 MB
const uploadLimit = 20 << 20

type ProjectHandler struct {
	projects *services.ProjectService
	reports  *services.ReportService
	activity *services.ActivityService
}

func NewProjectHandler(projects *services.ProjectService, reports *services.ReportService, activity *services.ActivityService) *ProjectHandler {
	return &ProjectHandler{projects: projects, reports: reports, activity: activity}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &models.ProjectListQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 10),
		SortBy:   r.URL.Query().Get("sort_by"),
		Status:   r.URL.Query().Get("status"),
	}

	page, err := h.projects.List(r.Context(), q)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.projects.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "create", "project", p.ID,
			fmt.Sprintf("Created project %s", p.Name))
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.projects.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "update", "project", id,
			fmt.Sprintf("Updated project %s", p.Name))
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "delete", "project", id, "Deleted project")
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}

// Complete closes a project with remarks
func (h *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req models.CompleteProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.projects.Complete(r.Context(), id, req.Remarks)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "update", "project", id,
			fmt.Sprintf("Completed project %s", p.Name))
	}
	utils.JSON(w, http.StatusOK, p)
}

// Publish toggles public visibility of a project
func (h *ProjectHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req models.PublishProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.projects.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		action := "unpublished"
		if req.Published {
			action = "published"
		}
		h.activity.Record(r.Context(), actorID, "update", "project", id,
			fmt.Sprintf("Project %s %s", p.Name, action))
	}
	utils.JSON(w, http.StatusOK, p)
}

// UploadFile accepts a multipart upload and stores it in object storage
func (h *ProjectHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	pf, err := h.projects.UploadFile(r.Context(), id, header.Filename, contentType, header.Size, file)
	if err != nil {
		if errors.Is(err, services.ErrStorageUnavailable) {
			utils.Error(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.activity.Record(r.Context(), actorID, "create", "project_file", pf.ID,
			fmt.Sprintf("Uploaded %s to project %d", pf.FileName, id))
	}
	utils.JSON(w, http.StatusCreated, pf)
}

func (h *ProjectHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.projects.ListFeedback(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list feedback")
		return
	}
	utils.JSON(w, http.StatusOK, feedbacks)
}

// ListProjectFeedback returns feedback for one project
func (h *ProjectHandler) ListProjectFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	feedbacks, err := h.projects.ListProjectFeedback(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSON(w, http.StatusOK, feedbacks)
}

// ListFiles returns the uploaded file descriptors for a project
func (h *ProjectHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSON(w, http.StatusOK, p.Files)
}

// AddFeedback accepts resident feedback on a published project
func (h *ProjectHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req models.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f, err := h.projects.AddFeedback(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotPublished) {
			utils.Error(w, http.StatusForbidden, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, f)
}

func (h *ProjectHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	counts, err := h.projects.Reactions(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSON(w, http.StatusOK, counts)
}

// AddReaction records a resident reaction on a published project
func (h *ProjectHandler) AddReaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req models.AddReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	counts, err := h.projects.AddReaction(r.Context(), id, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotPublished) {
			utils.Error(w, http.StatusForbidden, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, counts)
}

// Report renders a single project into a PDF report
func (h *ProjectHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}

	feedbacks, err := h.projects.ListProjectFeedback(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}

	data, err := h.reports.ProjectPDFExport(r.Context(), p, feedbacks)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	utils.File(w, "application/pdf", fmt.Sprintf("project-%d-report.pdf", id), data)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
