package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"
)

// StudyLogHandler handles study-log endpoints. Listing a course's logs is
// public; mutations require the authenticated owner.
type StudyLogHandler struct {
	studyLogService service.StudyLogService
	validate        *validator.Validate
	logger          zerolog.Logger
}

// NewStudyLogHandler creates a new StudyLogHandler
func NewStudyLogHandler(studyLogService service.StudyLogService, validate *validator.Validate, logger zerolog.Logger) *StudyLogHandler {
	return &StudyLogHandler{studyLogService: studyLogService, validate: validate, logger: logger}
}

// RegisterRoutes mounts study-log routes
func (h *StudyLogHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/v1/courses/{id}/logs", h.listLogs)
	mux.Handle("POST /api/v1/logs", authMw(http.HandlerFunc(h.createLog)))
	mux.Handle("PUT /api/v1/logs/{id}", authMw(http.HandlerFunc(h.updateLog)))
	mux.Handle("DELETE /api/v1/logs/{id}", authMw(http.HandlerFunc(h.deleteLog)))
}

// listLogs godoc
// @Summary List study logs for a course
// @Description Retrieves all study logs attached to a course, newest first.
// @Tags logs
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {array} dto.StudyLogResponseDTO
// @Failure 500 {string} string "Failed to list study logs"
// @Router /courses/{id}/logs [get]
func (h *StudyLogHandler) listLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.studyLogService.GetLogsByCourseID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list study logs")
		http.Error(w, "Failed to list study logs", http.StatusInternalServerError)
		return
	}

	resp := make([]dto.StudyLogResponseDTO, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, studyLogResponse(&l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createLog godoc
// @Summary Create a study log
// @Description Attaches a new study log to a course. All three fields are required.
// @Tags logs
// @Accept json
// @Produce json
// @Param log body dto.StudyLogCreateDTO true "Study log creation request"
// @Success 201 {object} dto.StudyLogResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to create study log"
// @Router /logs [post]
func (h *StudyLogHandler) createLog(w http.ResponseWriter, r *http.Request) {
	var req dto.StudyLogCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	log := &model.StudyLog{
		CourseID: req.CourseID,
		Title:    req.Title,
		Content:  req.Content,
	}
	created, err := h.studyLogService.CreateStudyLog(r.Context(), log)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create study log")
		http.Error(w, "Failed to create study log", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, studyLogResponse(created))
}

// updateLog godoc
// @Summary Update a study log
// @Description Replaces title and content of a study log.
// @Tags logs
// @Accept json
// @Param id path string true "Study log ID"
// @Param log body dto.StudyLogUpdateDTO true "Study log update request"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to update study log"
// @Router /logs/{id} [put]
func (h *StudyLogHandler) updateLog(w http.ResponseWriter, r *http.Request) {
	var req dto.StudyLogUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.studyLogService.UpdateStudyLog(r.Context(), r.PathValue("id"), req.Title, req.Content); err != nil {
		h.logger.Error().Err(err).Msg("Failed to update study log")
		http.Error(w, "Failed to update study log", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteLog godoc
// @Summary Delete a study log
// @Description Deletes a study log. Deleting a missing log is not an error.
// @Tags logs
// @Param id path string true "Study log ID"
// @Success 204 {string} string "No Content"
// @Failure 500 {string} string "Failed to delete study log"
// @Router /logs/{id} [delete]
func (h *StudyLogHandler) deleteLog(w http.ResponseWriter, r *http.Request) {
	if err := h.studyLogService.DeleteStudyLog(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete study log")
		http.Error(w, "Failed to delete study log", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func studyLogResponse(l *model.StudyLog) dto.StudyLogResponseDTO {
	return dto.StudyLogResponseDTO{
		ID:        l.ID,
		CourseID:  l.CourseID,
		Title:     l.Title,
		Content:   l.Content,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
