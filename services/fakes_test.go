package services

import (
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/token"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// memStore is an in-memory stand-in for the course and user repositories.
type memStore struct {
	mu       sync.Mutex
	courses  map[uint]models.Course
	users    map[uint]*models.User
	owned    map[uint]map[uint]bool
	nextUser uint
	enrolls  int
}

func newMemStore() *memStore {
	return &memStore{
		courses: map[uint]models.Course{},
		users:   map[uint]*models.User{},
		owned:   map[uint]map[uint]bool{},
	}
}

func (m *memStore) addCourse(id uint, name string, price float64) {
	m.courses[id] = models.Course{ID: id, Name: name, Price: price}
}

func (m *memStore) addUser(name, username, email string) *models.User {
	m.nextUser++
	u := &models.User{ID: m.nextUser, Name: name, Username: username, Email: email}
	m.users[u.ID] = u
	return u
}

func (m *memStore) GetByIDs(_ context.Context, ids []uint) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("User with ID %d not found.", id), id)
	}
	return u, nil
}

func (m *memStore) OwnedCourseIDs(_ context.Context, userID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []uint{}
	for id := range m.owned[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) EnrollAll(_ context.Context, userID uint, courseIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.owned[userID]
	if set == nil {
		set = map[uint]bool{}
		m.owned[userID] = set
	}
	for _, id := range courseIDs {
		if set[id] {
			return apperr.Conflict("User already owns course(s): "+apperr.JoinIDs([]uint{id}), id)
		}
	}
	for _, id := range courseIDs {
		set[id] = true
		m.enrolls++
	}
	return nil
}

func (m *memStore) find(match func(*models.User) bool) *models.User {
	for _, u := range m.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (m *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.find(func(u *models.User) bool { return u.Email == email }) != nil, nil
}

func (m *memStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return m.find(func(u *models.User) bool { return u.Username == username }) != nil, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u := m.find(func(u *models.User) bool { return u.Email == email }); u != nil {
		return u, nil
	}
	return nil, apperr.NotFound("User not found.")
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u := m.find(func(u *models.User) bool { return u.Username == username }); u != nil {
		return u, nil
	}
	return nil, apperr.NotFound("User not found.")
}

func (m *memStore) Create(_ context.Context, u *models.User) error {
	m.nextUser++
	u.ID = m.nextUser
	m.users[u.ID] = u
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, to+"|"+subject)
	return nil
}

type prefixHasher struct{}

func (prefixHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (prefixHasher) Compare(h, p string) bool     { return h == "hashed:"+p }

type stubIssuer struct {
	last token.Claims
}

func (s *stubIssuer) Issue(c token.Claims) (string, time.Time, error) {
	s.last = c
	return "token-for-" + c.Username, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

// catalogStub records what the catalog service asks of its stores.
type catalogStub struct {
	filter     models.CourseFilter
	searchTop  int
	query      string
	page, size int
	calls      map[string]int
	categories []models.Category
	failWith   error
}

func newCatalogStub() *catalogStub {
	return &catalogStub{calls: map[string]int{}}
}

func (s *catalogStub) GetByIDs(_ context.Context, ids []uint) ([]models.Course, error) {
	out := make([]models.Course, len(ids))
	for i, id := range ids {
		out[i] = models.Course{ID: id}
	}
	return out, nil
}

func (s *catalogStub) Filter(_ context.Context, f models.CourseFilter) ([]models.Course, int64, error) {
	s.filter = f
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	return []models.Course{{ID: 1}}, 12, nil
}

func (s *catalogStub) Search(_ context.Context, q string, top int) ([]models.Course, error) {
	s.query, s.searchTop = q, top
	return nil, nil
}

func (s *catalogStub) SearchPage(_ context.Context, q string, page, size int) ([]models.Course, int64, error) {
	s.query, s.page, s.size = q, page, size
	return nil, 0, nil
}

func (s *catalogStub) Categories(context.Context) ([]models.Category, error) {
	s.calls["categories"]++
	return s.categories, nil
}

func (s *catalogStub) TopCategories(_ context.Context, top int) ([]models.CategoryStat, error) {
	s.calls[fmt.Sprintf("top-categories:%d", top)]++
	return nil, nil
}

func (s *catalogStub) TopRated(_ context.Context, c models.Category, top int) ([]models.Course, error) {
	s.calls[fmt.Sprintf("top-rated:%s:%d", c, top)]++
	return nil, nil
}

type instructorStub struct {
	query      string
	page, size int
	topCalls   int
}

func (s *instructorStub) SearchPage(_ context.Context, q string, page, size int) ([]models.Instructor, int64, error) {
	s.query, s.page, s.size = q, page, size
	return nil, 0, nil
}

func (s *instructorStub) Top(context.Context, int) ([]models.InstructorStat, error) {
	s.topCalls++
	return []models.InstructorStat{}, nil
}

func (s *instructorStub) GetByName(_ context.Context, name string) (*models.Instructor, error) {
	if strings.EqualFold(name, "jane") {
		return &models.Instructor{ID: 1, Name: "Jane"}, nil
	}
	return nil, apperr.NotFound("Instructor not found.")
}

// mapCache is an in-memory cache.Cache.
type mapCache struct {
	data map[string]interface{}
}

func (c *mapCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]models.Category:
		*d = v.([]models.Category)
	default:
		return false, errors.New("unsupported type")
	}
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, v interface{}) error {
	c.data[key] = v
	return nil
}

func (c *mapCache) InvalidateCatalog(context.Context) error {
	c.data = map[string]interface{}{}
	return nil
}
