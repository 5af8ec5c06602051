package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"
)

// CourseHandler handles course-related endpoints. Reads are public; all
// mutations require the authenticated owner.
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/v1/courses", h.listCourses)
	mux.HandleFunc("GET /api/v1/courses/{id}", h.getCourse)
	mux.Handle("POST /api/v1/courses", authMw(http.HandlerFunc(h.createCourse)))
	mux.Handle("PUT /api/v1/courses/{id}", authMw(http.HandlerFunc(h.updateCourse)))
	mux.Handle("POST /api/v1/courses/{id}/toggle", authMw(http.HandlerFunc(h.toggleCourse)))
	mux.Handle("DELETE /api/v1/courses/{id}", authMw(http.HandlerFunc(h.deleteCourse)))
}

// listCourses godoc
// @Summary List all courses
// @Description Retrieves every course in the catalog, newest first.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 500 {string} string "Failed to list courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list courses")
		http.Error(w, "Failed to list courses", http.StatusInternalServerError)
		return
	}

	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, courseResponse(&c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course by its ID.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to retrieve course"
// @Router /courses/{id} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourseByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to retrieve course")
		http.Error(w, "Failed to retrieve course", http.StatusInternalServerError)
		return
	}
	if course == nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, courseResponse(course))
}

// createCourse godoc
// @Summary Create a new course
// @Description Registers a new learning topic. Title is required; other text fields default to empty strings.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to create course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: derefTrimmed(req.Description),
		Level:       derefTrimmed(req.Level),
		Category:    derefTrimmed(req.Category),
		Link:        derefTrimmed(req.Link),
	}
	created, err := h.courseService.CreateCourse(r.Context(), course)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create course")
		http.Error(w, "Failed to create course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, courseResponse(created))
}

// updateCourse godoc
// @Summary Update a course
// @Description Replaces the mutable fields of a course. Omitted optional fields are cleared, not preserved.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to update course"
// @Router /courses/{id} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	course := &model.Course{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: derefTrimmed(req.Description),
		Level:       derefTrimmed(req.Level),
		Category:    derefTrimmed(req.Category),
		Link:        derefTrimmed(req.Link),
	}
	updated, err := h.courseService.UpdateCourse(r.Context(), course)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to update course")
		http.Error(w, "Failed to update course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, courseResponse(updated))
}

// toggleCourse godoc
// @Summary Toggle course completion
// @Description Flips the completion flag of a course and invalidates its cached views.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to toggle course"
// @Router /courses/{id}/toggle [post]
func (h *CourseHandler) toggleCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.ToggleCourseCompleted(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to toggle course")
		http.Error(w, "Failed to toggle course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, courseResponse(course))
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course. Deleting a missing course is not an error.
// @Tags courses
// @Param id path string true "Course ID"
// @Success 204 {string} string "No Content"
// @Failure 500 {string} string "Failed to delete course"
// @Router /courses/{id} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteCourse(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete course")
		http.Error(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func courseResponse(c *model.Course) dto.CourseResponseDTO {
	return dto.CourseResponseDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Level:       c.Level,
		Category:    c.Category,
		Link:        c.Link,
		Completed:   c.Completed,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
