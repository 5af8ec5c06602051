package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/viewcache"
)

// ErrCourseNotFound is returned when an operation that requires an existing
// course is given an ID that does not resolve.
var ErrCourseNotFound = errors.New("course not found")

// CourseService defines the interface for course operations
type CourseService interface {
	// ListCourses retrieves all courses, newest first
	ListCourses(ctx context.Context) ([]model.Course, error)
	// GetCourseByID retrieves a course by its ID; returns nil when missing
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	// UpdateCourse replaces all mutable fields of an existing course
	UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	// ToggleCourseCompleted flips the completion flag and invalidates the
	// cached course list and detail views
	ToggleCourseCompleted(ctx context.Context, courseID string) (*model.Course, error)
	// DeleteCourse deletes a course; missing IDs are not an error
	DeleteCourse(ctx context.Context, courseID string) error
}

// courseService is the implementation of CourseService
type courseService struct {
	repo  repository.CourseRepository
	cache viewcache.Invalidator
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, cache viewcache.Invalidator) CourseService {
	return &courseService{repo: repo, cache: cache}
}

// ListCourses retrieves all courses ordered by creation time descending
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.ListCourses(ctx)
}

// GetCourseByID retrieves a course by its ID
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	return s.repo.GetCourseByID(ctx, courseID)
}

// CreateCourse creates a new course record and returns it with its
// store-assigned ID and timestamps
func (s *courseService) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if err := s.repo.CreateCourse(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCourse replaces the mutable fields of an existing course. Optional
// fields the caller leaves empty are reset to empty strings, not preserved.
func (s *courseService) UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	existing, err := s.repo.GetCourseByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCourseNotFound
	}

	if err := s.repo.UpdateCourse(ctx, c); err != nil {
		return nil, err
	}
	c.Completed = existing.Completed
	c.CreatedAt = existing.CreatedAt
	return c, nil
}

// ToggleCourseCompleted flips the completion flag. Unlike delete, toggling
// a missing course is a hard failure. On success the course-list and
// course-detail view caches are invalidated.
func (s *courseService) ToggleCourseCompleted(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	course.Completed = !course.Completed
	if err := s.repo.SetCourseCompleted(ctx, courseID, course.Completed); err != nil {
		return nil, err
	}

	s.cache.Invalidate(viewcache.CoursesListKey, viewcache.CourseDetailKey(courseID))
	return course, nil
}

// DeleteCourse deletes a course by its ID; deleting a missing ID is a no-op
func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	return s.repo.DeleteCourse(ctx, courseID)
}
