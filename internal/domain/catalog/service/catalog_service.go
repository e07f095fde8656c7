package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms_commerce/internal/domain/catalog/model"
	"lms_commerce/internal/domain/catalog/repository"
	"lms_commerce/pkg/cache"
	"lms_commerce/pkg/logger"

	"go.uber.org/zap"
)

var ErrNotPublished = errors.New("item is not published")

const courseCacheTTL = 10 * time.Minute

type CatalogService interface {
	CreateCourse(course *model.Course) error
	GetCourse(id string) (*model.Course, error)
	UpdateCourse(course *model.Course) error
	ListCourses(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error)

	CreateDegreeProgram(program *model.DegreeProgram) error
	GetDegreeProgram(id string) (*model.DegreeProgram, error)
	ListDegreePrograms(publishedOnly bool, page, limit int) ([]model.DegreeProgram, int64, error)

	CreateMentorshipProgram(program *model.MentorshipProgram) error
	GetMentorshipProgram(id string) (*model.MentorshipProgram, error)
	ListMentorshipPrograms(publishedOnly bool, page, limit int) ([]model.MentorshipProgram, int64, error)

	CreatePlan(plan *model.Plan) error
	GetPlan(id string) (*model.Plan, error)
	ListActivePlans() ([]model.Plan, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache cache.CacheService
}

func NewCatalogService(repo repository.CatalogRepository, cacheService cache.CacheService) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cacheService,
	}
}

// --- Course ---

func (s *catalogService) CreateCourse(course *model.Course) error {
	return s.repo.CreateCourse(course)
}

func courseCacheKey(id string) string {
	return fmt.Sprintf("catalog:course:%s", id)
}

// GetCourse reads through the cache; detail pages are the hottest path.
func (s *catalogService) GetCourse(id string) (*model.Course, error) {
	ctx := context.Background()

	var cached model.Course
	if err := s.cache.Get(ctx, courseCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	course, err := s.repo.GetCourseByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, courseCacheKey(id), course, courseCacheTTL); err != nil {
		// Cache failures never fail the read path.
		if logger.Log != nil {
			logger.Log.Warn("course cache set failed", zap.String("id", id), zap.Error(err))
		}
	}

	return course, nil
}

func (s *catalogService) UpdateCourse(course *model.Course) error {
	if err := s.repo.UpdateCourse(course); err != nil {
		return err
	}
	return s.cache.Delete(context.Background(), courseCacheKey(course.ID))
}

func (s *catalogService) ListCourses(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetCourses(filter, offset, limit)
}

// --- DegreeProgram ---

func (s *catalogService) CreateDegreeProgram(program *model.DegreeProgram) error {
	return s.repo.CreateDegreeProgram(program)
}

func (s *catalogService) GetDegreeProgram(id string) (*model.DegreeProgram, error) {
	return s.repo.GetDegreeProgramByID(id)
}

func (s *catalogService) ListDegreePrograms(publishedOnly bool, page, limit int) ([]model.DegreeProgram, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetDegreePrograms(publishedOnly, offset, limit)
}

// --- MentorshipProgram ---

func (s *catalogService) CreateMentorshipProgram(program *model.MentorshipProgram) error {
	return s.repo.CreateMentorshipProgram(program)
}

func (s *catalogService) GetMentorshipProgram(id string) (*model.MentorshipProgram, error) {
	return s.repo.GetMentorshipProgramByID(id)
}

func (s *catalogService) ListMentorshipPrograms(publishedOnly bool, page, limit int) ([]model.MentorshipProgram, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetMentorshipPrograms(publishedOnly, offset, limit)
}

// --- Plan ---

func (s *catalogService) CreatePlan(plan *model.Plan) error {
	if plan.PlanType != model.PlanTypeMonthly &&
		plan.PlanType != model.PlanTypeYearly &&
		plan.PlanType != model.PlanTypeLifetime {
		return errors.New("invalid plan type")
	}
	return s.repo.CreatePlan(plan)
}

func (s *catalogService) GetPlan(id string) (*model.Plan, error) {
	return s.repo.GetPlanByID(id)
}

func (s *catalogService) ListActivePlans() ([]model.Plan, error) {
	return s.repo.GetActivePlans()
}
