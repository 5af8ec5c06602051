package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"
)

// StudyLogService defines study-log operations
type StudyLogService interface {
	// GetLogsByCourseID retrieves all logs for a course, newest first
	GetLogsByCourseID(ctx context.Context, courseID string) ([]model.StudyLog, error)
	CreateStudyLog(ctx context.Context, l *model.StudyLog) (*model.StudyLog, error)
	// UpdateStudyLog replaces title and content of an existing log
	UpdateStudyLog(ctx context.Context, logID, title, content string) error
	// DeleteStudyLog deletes a log; missing IDs are not an error
	DeleteStudyLog(ctx context.Context, logID string) error
}

// studyLogService is the implementation of StudyLogService
type studyLogService struct {
	repo repository.StudyLogRepository
}

// NewStudyLogService creates a new StudyLogService
func NewStudyLogService(repo repository.StudyLogRepository) StudyLogService {
	return &studyLogService{repo: repo}
}

// GetLogsByCourseID retrieves logs for a given course, newest first
func (s *studyLogService) GetLogsByCourseID(ctx context.Context, courseID string) ([]model.StudyLog, error) {
	return s.repo.GetLogsByCourseID(ctx, courseID)
}

// CreateStudyLog creates a new study log. The course ID is taken on trust;
// the store does not check it references an existing course.
func (s *studyLogService) CreateStudyLog(ctx context.Context, l *model.StudyLog) (*model.StudyLog, error) {
	if err := s.repo.CreateStudyLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateStudyLog replaces title and content of an existing log
func (s *studyLogService) UpdateStudyLog(ctx context.Context, logID, title, content string) error {
	return s.repo.UpdateStudyLog(ctx, logID, title, content)
}

// DeleteStudyLog deletes a log by its ID
func (s *studyLogService) DeleteStudyLog(ctx context.Context, logID string) error {
	return s.repo.DeleteStudyLog(ctx, logID)
}
