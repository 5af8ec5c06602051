package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"
)

// MemoHandler handles dashboard-memo endpoints. Every route requires the
// authenticated owner; the subject from the token scopes all operations.
type MemoHandler struct {
	memoService service.MemoService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewMemoHandler creates a new MemoHandler
func NewMemoHandler(memoService service.MemoService, validate *validator.Validate, logger zerolog.Logger) *MemoHandler {
	return &MemoHandler{memoService: memoService, validate: validate, logger: logger}
}

// RegisterRoutes mounts memo routes
func (h *MemoHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/v1/memos", authMw(http.HandlerFunc(h.listMemos)))
	mux.Handle("POST /api/v1/memos", authMw(http.HandlerFunc(h.createMemo)))
	mux.Handle("PATCH /api/v1/memos/{id}", authMw(http.HandlerFunc(h.updateMemo)))
	mux.Handle("POST /api/v1/memos/{id}/toggle", authMw(http.HandlerFunc(h.toggleMemo)))
	mux.Handle("DELETE /api/v1/memos/{id}", authMw(http.HandlerFunc(h.deleteMemo)))
}

// listMemos godoc
// @Summary List dashboard memos
// @Description Retrieves the caller's most recent memos, capped at the limit query parameter (default 10).
// @Tags memos
// @Produce json
// @Param limit query int false "Maximum number of memos"
// @Success 200 {array} dto.MemoResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to list memos"
// @Router /memos [get]
func (h *MemoHandler) listMemos(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	memos, err := h.memoService.ListMemos(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list memos")
		http.Error(w, "Failed to list memos", http.StatusInternalServerError)
		return
	}

	resp := make([]dto.MemoResponseDTO, 0, len(memos))
	for _, m := range memos {
		resp = append(resp, memoResponse(&m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createMemo godoc
// @Summary Create a dashboard memo
// @Description Creates a memo owned by the caller. A blank title after trimming is skipped silently.
// @Tags memos
// @Accept json
// @Produce json
// @Param memo body dto.MemoCreateDTO true "Memo creation request"
// @Success 201 {object} dto.MemoResponseDTO
// @Success 204 {string} string "Skipped"
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to create memo"
// @Router /memos [post]
func (h *MemoHandler) createMemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.MemoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	memo, err := h.memoService.CreateMemo(r.Context(), userID, req.Title, derefTrimmed(req.Content))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create memo")
		http.Error(w, "Failed to create memo", http.StatusInternalServerError)
		return
	}
	if memo == nil {
		// Blank title after trimming: skipped, not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, memoResponse(memo))
}

// updateMemo godoc
// @Summary Patch a dashboard memo
// @Description Updates only the supplied fields of an owned memo. A request with neither field is a no-op.
// @Tags memos
// @Accept json
// @Param id path string true "Memo ID"
// @Param memo body dto.MemoUpdateDTO true "Memo patch request"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to update memo"
// @Router /memos/{id} [patch]
func (h *MemoHandler) updateMemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.MemoUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := service.MemoUpdate{
		ID:      r.PathValue("id"),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.memoService.UpdateMemo(r.Context(), update); err != nil {
		h.logger.Error().Err(err).Msg("Failed to update memo")
		http.Error(w, "Failed to update memo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toggleMemo godoc
// @Summary Toggle a memo's done flag
// @Description Flips the done flag of an owned memo. Missing memos and ownership mismatches are silent no-ops.
// @Tags memos
// @Produce json
// @Param id path string true "Memo ID"
// @Success 200 {object} dto.MemoResponseDTO
// @Success 204 {string} string "Skipped"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to toggle memo"
// @Router /memos/{id}/toggle [post]
func (h *MemoHandler) toggleMemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	memo, err := h.memoService.ToggleMemoDone(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to toggle memo")
		http.Error(w, "Failed to toggle memo", http.StatusInternalServerError)
		return
	}
	if memo == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, memoResponse(memo))
}

// deleteMemo godoc
// @Summary Delete a dashboard memo
// @Description Deletes an owned memo. Ownership mismatches delete nothing.
// @Tags memos
// @Param id path string true "Memo ID"
// @Success 204 {string} string "No Content"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to delete memo"
// @Router /memos/{id} [delete]
func (h *MemoHandler) deleteMemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.memoService.DeleteMemo(r.Context(), r.PathValue("id"), userID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete memo")
		http.Error(w, "Failed to delete memo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	return userID, ok && userID != ""
}

func memoResponse(m *model.DashboardMemo) dto.MemoResponseDTO {
	return dto.MemoResponseDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		IsDone:    m.IsDone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
