package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"app/internal/api/v1/dto"
	"app/internal/service"
)

// DashboardHandler serves the merged dashboard view-model.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes mounts dashboard routes
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/v1/dashboard", authMw(http.HandlerFunc(h.getDashboard)))
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Returns learning stats, the caller's memos, recent study activity and aggregated GitHub activity in one payload.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to load dashboard"
// @Router /dashboard [get]
func (h *DashboardHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	d, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load dashboard")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	memos := make([]dto.MemoResponseDTO, 0, len(d.Memos))
	for _, m := range d.Memos {
		memos = append(memos, memoResponse(&m))
	}

	resp := dto.DashboardResponseDTO{
		LearningStats: dto.LearningStatsDTO{
			TotalCourses:     d.LearningStats.TotalCourses,
			CompletedCourses: d.LearningStats.CompletedCourses,
			TotalLogs:        d.LearningStats.TotalLogs,
			LastStudyLogAt:   d.LearningStats.LastStudyLogAt,
		},
		Memos: memos,
		ProjectsCount:      d.ProjectsCount,
		RecentCommitCount:  d.RecentCommitCount,
		Histogram:          d.Histogram,
		LearningActivities: dto.NewActivityItemDTOs(d.LearningActivities),
		GithubActivities:   dto.NewActivityItemDTOs(d.GithubActivities),
		RecentRepos:        dto.NewRankedRepoDTOs(d.RecentRepos),
	}
	writeJSON(w, http.StatusOK, resp)
}
