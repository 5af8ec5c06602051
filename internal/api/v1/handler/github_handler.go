package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"app/internal/api/v1/dto"
	"app/internal/service"
)

// GithubHandler exposes the read-only GitHub activity endpoints. All are
// public and best-effort: upstream failures surface as empty results,
// never as errors.
type GithubHandler struct {
	githubService service.GithubService
	logger        zerolog.Logger
}

// NewGithubHandler creates a new GithubHandler
func NewGithubHandler(githubService service.GithubService, logger zerolog.Logger) *GithubHandler {
	return &GithubHandler{githubService: githubService, logger: logger}
}

// RegisterRoutes mounts GitHub routes
func (h *GithubHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/github/activity", h.getActivity)
	mux.HandleFunc("GET /api/v1/github/repos", h.listRepos)
	mux.HandleFunc("GET /api/v1/github/repos/{name}", h.getRepo)
	mux.HandleFunc("GET /api/v1/github/repos/{name}/contents", h.listContents)
}

// getActivity godoc
// @Summary Get aggregated GitHub activity
// @Description Returns the 8-day push histogram, recent push count, activity feed and top recently-touched repositories.
// @Tags github
// @Produce json
// @Success 200 {object} dto.ActivitySnapshotDTO
// @Router /github/activity [get]
func (h *GithubHandler) getActivity(w http.ResponseWriter, r *http.Request) {
	snapshot := h.githubService.ActivitySnapshot(r.Context())
	writeJSON(w, http.StatusOK, dto.NewActivitySnapshotDTO(snapshot))
}

// listRepos godoc
// @Summary List public repositories
// @Description Returns the account's public repositories ordered by most recent push or update.
// @Tags github
// @Produce json
// @Success 200 {array} dto.RepoResponseDTO
// @Router /github/repos [get]
func (h *GithubHandler) listRepos(w http.ResponseWriter, r *http.Request) {
	repos := h.githubService.ListRepos(r.Context())
	resp := make([]dto.RepoResponseDTO, 0, len(repos))
	for _, repo := range repos {
		resp = append(resp, dto.NewRepoResponseDTO(repo))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getRepo godoc
// @Summary Get a repository
// @Description Returns a single public repository by name.
// @Tags github
// @Produce json
// @Param name path string true "Repository name"
// @Success 200 {object} dto.RepoResponseDTO
// @Failure 404 {string} string "Repository not found"
// @Router /github/repos/{name} [get]
func (h *GithubHandler) getRepo(w http.ResponseWriter, r *http.Request) {
	repo := h.githubService.GetRepo(r.Context(), r.PathValue("name"))
	if repo == nil {
		http.Error(w, "Repository not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRepoResponseDTO(*repo))
}

// listContents godoc
// @Summary List repository contents
// @Description Returns the top-level directory listing of a repository.
// @Tags github
// @Produce json
// @Param name path string true "Repository name"
// @Success 200 {array} dto.RepoContentResponseDTO
// @Router /github/repos/{name}/contents [get]
func (h *GithubHandler) listContents(w http.ResponseWriter, r *http.Request) {
	contents := h.githubService.ListContents(r.Context(), r.PathValue("name"))
	resp := make([]dto.RepoContentResponseDTO, 0, len(contents))
	for _, c := range contents {
		resp = append(resp, dto.RepoContentResponseDTO{
			Name:    c.Name,
			Path:    c.Path,
			Type:    c.Type,
			Size:    c.Size,
			HTMLURL: c.HTMLURL,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
