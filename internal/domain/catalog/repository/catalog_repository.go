package repository

import (
	"lms_commerce/internal/domain/catalog/model"

	"gorm.io/gorm"
)

// CourseFilter is the typed filter built from list query parameters.
type CourseFilter struct {
	Category      string
	Level         string
	MinPrice      *float64
	MaxPrice      *float64
	PublishedOnly bool
}

type CatalogRepository interface {
	CreateCourse(course *model.Course) error
	GetCourseByID(id string) (*model.Course, error)
	UpdateCourse(course *model.Course) error
	GetCourses(filter CourseFilter, offset, limit int) ([]model.Course, int64, error)

	CreateDegreeProgram(program *model.DegreeProgram) error
	GetDegreeProgramByID(id string) (*model.DegreeProgram, error)
	GetDegreePrograms(publishedOnly bool, offset, limit int) ([]model.DegreeProgram, int64, error)

	CreateMentorshipProgram(program *model.MentorshipProgram) error
	GetMentorshipProgramByID(id string) (*model.MentorshipProgram, error)
	GetMentorshipPrograms(publishedOnly bool, offset, limit int) ([]model.MentorshipProgram, int64, error)

	CreatePlan(plan *model.Plan) error
	GetPlanByID(id string) (*model.Plan, error)
	GetActivePlans() ([]model.Plan, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Course ---

func (r *catalogRepository) CreateCourse(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *catalogRepository) GetCourseByID(id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *catalogRepository) UpdateCourse(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *catalogRepository) GetCourses(filter CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.db.Model(&model.Course{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// --- DegreeProgram ---

func (r *catalogRepository) CreateDegreeProgram(program *model.DegreeProgram) error {
	return r.db.Create(program).Error
}

func (r *catalogRepository) GetDegreeProgramByID(id string) (*model.DegreeProgram, error) {
	var program model.DegreeProgram
	if err := r.db.Where("id = ?", id).First(&program).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *catalogRepository) GetDegreePrograms(publishedOnly bool, offset, limit int) ([]model.DegreeProgram, int64, error) {
	var programs []model.DegreeProgram
	var total int64

	query := r.db.Model(&model.DegreeProgram{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// --- MentorshipProgram ---

func (r *catalogRepository) CreateMentorshipProgram(program *model.MentorshipProgram) error {
	return r.db.Create(program).Error
}

func (r *catalogRepository) GetMentorshipProgramByID(id string) (*model.MentorshipProgram, error) {
	var program model.MentorshipProgram
	if err := r.db.Where("id = ?", id).First(&program).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *catalogRepository) GetMentorshipPrograms(publishedOnly bool, offset, limit int) ([]model.MentorshipProgram, int64, error) {
	var programs []model.MentorshipProgram
	var total int64

	query := r.db.Model(&model.MentorshipProgram{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// --- Plan ---

func (r *catalogRepository) CreatePlan(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *catalogRepository) GetPlanByID(id string) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) GetActivePlans() ([]model.Plan, error) {
	var plans []model.Plan
	if err := r.db.Where("active = ?", true).Order("price asc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
