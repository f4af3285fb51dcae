package services

import (
	"byway/cache"
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/logger"
	"context"
	"fmt"
	"strings"
)

type CourseCatalog interface {
	GetByIDs(ctx context.Context, ids []uint) ([]models.Course, error)
	Filter(ctx context.Context, f models.CourseFilter) ([]models.Course, int64, error)
	Search(ctx context.Context, query string, top int) ([]models.Course, error)
	SearchPage(ctx context.Context, query string, page, size int) ([]models.Course, int64, error)
	Categories(ctx context.Context) ([]models.Category, error)
	TopCategories(ctx context.Context, top int) ([]models.CategoryStat, error)
	TopRated(ctx context.Context, category models.Category, top int) ([]models.Course, error)
}

type InstructorCatalog interface {
	SearchPage(ctx context.Context, query string, page, size int) ([]models.Instructor, int64, error)
	Top(ctx context.Context, top int) ([]models.InstructorStat, error)
	GetByName(ctx context.Context, name string) (*models.Instructor, error)
}

// FilterInput is the filter request as received, before normalization.
// A nil MaximumPrice means no upper bound was supplied.
type FilterInput struct {
	SortBy        string
	Categories    []models.Category
	Rate          float64
	MinimumPrice  float64
	MaximumPrice  *float64
	LectureBucket *models.LectureBucket
	PageNumber    int
	PageSize      int
}

// CatalogService answers the public read side of the catalog: filtering, search and top lists.
type CatalogService struct {
	courses     CourseCatalog
	instructors InstructorCatalog
	cache       cache.Cache
	log         *logger.Logger
}

func NewCatalogService(courses CourseCatalog, instructors InstructorCatalog, c cache.Cache, log *logger.Logger) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{
		courses:     courses,
		instructors: instructors,
		cache:       c,
		log:         log.With("service", "CatalogService"),
	}
}

// NormalizeFilter clamps paging, floors the minimum price at zero and rejects a maximum below the
// minimum before treating a non-positive maximum as unbounded.
func NormalizeFilter(in FilterInput) (models.CourseFilter, error) {
	page, size := models.ClampPage(in.PageNumber, in.PageSize, models.DefaultFilterPageSize)

	minPrice := in.MinimumPrice
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice := models.UnboundedPrice
	if in.MaximumPrice != nil {
		maxPrice = *in.MaximumPrice
	}
	if maxPrice < minPrice {
		return models.CourseFilter{}, apperr.Input("maximumPrice", "Maximum Price cannot be less than Minimum Price.")
	}
	if maxPrice <= 0 {
		maxPrice = models.UnboundedPrice
	}
	if in.Rate < 0 || in.Rate > 5 {
		return models.CourseFilter{}, apperr.Input("rate", "Rate must be between 0 and 5.")
	}

	cats := make([]models.Category, 0, len(in.Categories))
	seen := make(map[models.Category]bool, len(in.Categories))
	for _, c := range in.Categories {
		if !c.Valid() {
			return models.CourseFilter{}, apperr.Input("categories", fmt.Sprintf("Unknown category %q.", c))
		}
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}

	return models.CourseFilter{
		SortBy:        models.ParseSortBy(in.SortBy),
		Categories:    cats,
		Rate:          in.Rate,
		MinimumPrice:  minPrice,
		MaximumPrice:  maxPrice,
		LectureBucket: in.LectureBucket,
		PageNumber:    page,
		PageSize:      size,
	}, nil
}

func (s *CatalogService) Filter(ctx context.Context, in FilterInput) (models.Page[models.Course], error) {
	f, err := NormalizeFilter(in)
	if err != nil {
		return models.Page[models.Course]{}, err
	}
	items, total, err := s.courses.Filter(ctx, f)
	if err != nil {
		s.log.Error("Filter failed", "error", err)
		return models.Page[models.Course]{}, apperr.Unexpected(err)
	}
	return models.NewPage(items, total, f.PageNumber, f.PageSize), nil
}

func cleanQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", apperr.Input("query", "Query cannot be null or empty.")
	}
	return q, nil
}

// Search returns at most top courses matching the query. top < 1 falls back to 7.
func (s *CatalogService) Search(ctx context.Context, query string, top int) ([]models.Course, error) {
	q, err := cleanQuery(query)
	if err != nil {
		return nil, err
	}
	if top < 1 {
		top = models.DefaultSearchTop
	}
	items, err := s.courses.Search(ctx, q, top)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return items, nil
}

func (s *CatalogService) SearchCourses(ctx context.Context, query string, page, size int) (models.Page[models.Course], error) {
	q, err := cleanQuery(query)
	if err != nil {
		return models.Page[models.Course]{}, err
	}
	page, size = models.ClampPage(page, size, models.DefaultCourseSearch)
	items, total, err := s.courses.SearchPage(ctx, q, page, size)
	if err != nil {
		return models.Page[models.Course]{}, apperr.Unexpected(err)
	}
	return models.NewPage(items, total, page, size), nil
}

func (s *CatalogService) SearchInstructors(ctx context.Context, query string, page, size int) (models.Page[models.Instructor], error) {
	q, err := cleanQuery(query)
	if err != nil {
		return models.Page[models.Instructor]{}, err
	}
	page, size = models.ClampPage(page, size, models.DefaultInstructorPage)
	items, total, err := s.instructors.SearchPage(ctx, q, page, size)
	if err != nil {
		return models.Page[models.Instructor]{}, apperr.Unexpected(err)
	}
	return models.NewPage(items, total, page, size), nil
}

func (s *CatalogService) InstructorByName(ctx context.Context, name string) (*models.Instructor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Input("instructorName", "Instructor name cannot be empty.")
	}
	return s.instructors.GetByName(ctx, name)
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.CatalogKey("categories"), func() ([]models.Category, error) {
		return s.courses.Categories(ctx)
	})
}

func (s *CatalogService) TopCategories(ctx context.Context, top int) ([]models.CategoryStat, error) {
	if top < 1 {
		top = 5
	}
	return cache.GetOrLoad(ctx, s.cache, cache.CatalogKey("top-categories", top), func() ([]models.CategoryStat, error) {
		return s.courses.TopCategories(ctx, top)
	})
}

// TopCourses returns the best rated courses, optionally within one category.
func (s *CatalogService) TopCourses(ctx context.Context, category models.Category, top int) ([]models.Course, error) {
	if category != "" && !category.Valid() {
		return nil, apperr.Input("category", fmt.Sprintf("Unknown category %q.", category))
	}
	if top < 1 {
		top = 5
		if category != "" {
			top = 4
		}
	}
	return cache.GetOrLoad(ctx, s.cache, cache.CatalogKey("top-courses", category, top), func() ([]models.Course, error) {
		return s.courses.TopRated(ctx, category, top)
	})
}

// TopInstructors is not cached: student counts change with every purchase.
func (s *CatalogService) TopInstructors(ctx context.Context, top int) ([]models.InstructorStat, error) {
	if top < 1 {
		top = 10
	}
	return s.instructors.Top(ctx, top)
}

// Cart resolves a set of course ids for display. Unknown ids are skipped.
func (s *CatalogService) Cart(ctx context.Context, ids []uint) ([]models.Course, error) {
	set := uniqueIDs(ids)
	if len(set) == 0 {
		return nil, apperr.Input("cartIds", "Cart IDs cannot be empty.")
	}
	courses, err := s.courses.GetByIDs(ctx, set)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return courses, nil
}

// Invalidate drops cached top lists after a catalog write.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}
