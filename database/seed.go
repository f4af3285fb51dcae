package database

import (
	"byway/config"
	"byway/models"
	"byway/utils/logger"
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

type passwordHasher interface {
	Hash(password string) (string, error)
}

// Seeder fills an empty database with the default admin and, optionally, a fake catalog.
type Seeder struct {
	db     *gorm.DB
	cfg    *config.Config
	hasher passwordHasher
	log    *logger.Logger
	rnd    *rand.Rand
}

func NewSeeder(db *gorm.DB, cfg *config.Config, hasher passwordHasher, log *logger.Logger) *Seeder {
	return &Seeder{
		db:     db,
		cfg:    cfg,
		hasher: hasher,
		log:    log.With("component", "seeder"),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run is idempotent: each step only acts when its table is (nearly) empty.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	if !s.cfg.SeedFakeData {
		return nil
	}
	return s.seedCatalog(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := s.hasher.Hash(s.cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:           s.cfg.DefaultAdminName,
		Username:       strings.ToLower(s.cfg.DefaultAdminUsername),
		Email:          strings.ToLower(s.cfg.DefaultAdminEmail),
		HashedPassword: hashed,
		IsAdmin:        true,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	s.log.Info("Default admin created", "username", admin.Username)
	return nil
}

var firstNames = []string{"Ava", "Liam", "Noah", "Mia", "Omar", "Sara", "Yusuf", "Lina", "Adam", "Nour", "Ethan", "Zoe"}
var lastNames = []string{"Hassan", "Smith", "Ali", "Brown", "Khan", "Garcia", "Ibrahim", "Miller", "Said", "Lopez"}

var subjects = map[models.Category][]string{
	models.FrontendDevelopment:  {"React", "Vue", "Angular", "HTML & CSS", "TypeScript"},
	models.BackendDevelopment:   {"Node.js", "Go Services", "Java Spring", "Python Django"},
	models.FullstackDevelopment: {"MERN Stack", "MEAN Stack", "Fullstack Java"},
	models.UXUIDesign:           {"Figma", "Adobe XD", "UX Research", "Wireframing"},
	models.MobileDevelopment:    {"Flutter", "React Native", "Swift", "Kotlin"},
	models.DevOps:               {"Docker", "Kubernetes", "CI/CD", "AWS"},
	models.DataEngineering:      {"ETL", "Spark", "Airflow", "Data Pipelines"},
	models.DataScience:          {"Machine Learning", "Python for Data Science", "Deep Learning"},
	models.QualityAssurance:     {"Manual Testing", "Selenium", "Cypress", "Test Automation"},
	models.ProductManagement:    {"Agile", "Scrum", "Roadmapping"},
	models.ProjectManagement:    {"Project Planning", "Agile PM", "Risk Management"},
	models.SystemAdministration: {"Linux Admin", "Windows Server", "Networking"},
	models.SecurityEngineering:  {"Cybersecurity Basics", "Penetration Testing", "Ethical Hacking"},
	models.CloudArchitecture:    {"AWS Cloud", "Azure Fundamentals", "GCP Essentials"},
	models.BusinessAnalysis:     {"Business Analysis", "Requirements Gathering", "Process Mapping"},
}

var courseLevels = []string{"Beginner", "Intermediate", "Advanced", "Masterclass", "Bootcamp"}

func (s *Seeder) seedCatalog(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var users, instructors, courses int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Instructor{}).Count(&instructors)
	db.Model(&models.Course{}).Count(&courses)

	if users < 10 {
		if err := s.seedUsers(db); err != nil {
			return err
		}
	}
	if instructors < 10 {
		if err := s.seedInstructors(db); err != nil {
			return err
		}
	}
	if courses >= 10 {
		return nil
	}
	if err := s.seedCourses(db); err != nil {
		return err
	}
	return s.seedEnrollments(db)
}

func (s *Seeder) seedUsers(db *gorm.DB) error {
	hashed, err := s.hasher.Hash("password")
	if err != nil {
		return err
	}
	users := make([]models.User, 0, s.cfg.SeedUsers)
	for i := 0; i < s.cfg.SeedUsers; i++ {
		first, last := s.pick(firstNames), s.pick(lastNames)
		handle := fmt.Sprintf("%s.%s%d", strings.ToLower(first), strings.ToLower(last), i)
		users = append(users, models.User{
			Name:           first + " " + last,
			Username:       handle,
			Email:          handle + "@example.com",
			HashedPassword: hashed,
		})
	}
	if len(users) == 0 {
		return nil
	}
	s.log.Info("Seeding users", "count", len(users))
	return db.CreateInBatches(&users, 100).Error
}

func (s *Seeder) seedInstructors(db *gorm.DB) error {
	cats := models.AllCategories()
	instructors := make([]models.Instructor, 0, s.cfg.SeedInstructors)
	for i := 0; i < s.cfg.SeedInstructors; i++ {
		title := cats[s.rnd.Intn(len(cats))]
		instructors = append(instructors, models.Instructor{
			Name:        s.pick(firstNames) + " " + s.pick(lastNames),
			Title:       title,
			Rate:        s.round(3+s.rnd.Float64()*2, 1),
			Description: fmt.Sprintf("Practitioner and mentor in %s.", title),
			PictureURL:  fmt.Sprintf("https://i.pravatar.cc/150?img=%d", i%70+1),
		})
	}
	if len(instructors) == 0 {
		return nil
	}
	s.log.Info("Seeding instructors", "count", len(instructors))
	return db.CreateInBatches(&instructors, 100).Error
}

func (s *Seeder) seedCourses(db *gorm.DB) error {
	var instructors []models.Instructor
	if err := db.Find(&instructors).Error; err != nil {
		return err
	}
	if len(instructors) == 0 {
		return nil
	}

	levels := []models.Level{models.AllLevels, models.Beginner, models.Intermediate, models.Expert}
	courses := make([]models.Course, 0, s.cfg.SeedCourses)
	for i := 0; i < s.cfg.SeedCourses; i++ {
		inst := instructors[s.rnd.Intn(len(instructors))]
		subject := s.pick(subjects[inst.Title])
		course := models.Course{
			Name:          s.pick(courseLevels) + " " + subject,
			Description:   fmt.Sprintf("A hands-on course on %s.", subject),
			Certification: "Certificate of completion",
			Category:      inst.Title,
			Level:         levels[s.rnd.Intn(len(levels))],
			Price:         s.round(10+s.rnd.Float64()*890, 2),
			Rate:          s.round(1+s.rnd.Float64()*4, 1),
			InstructorID:  inst.ID,
			PictureURL:    fmt.Sprintf("https://picsum.photos/seed/%d/200/100", i),
		}
		for j, n := 0, 3+s.rnd.Intn(6); j < n; j++ {
			course.Contents = append(course.Contents, models.Content{
				Name:          fmt.Sprintf("Module %d: %s", j+1, subject),
				NumOfLectures: 1 + s.rnd.Intn(10),
				Duration:      s.round(0.5+s.rnd.Float64()*2.5, 1),
			})
		}
		courses = append(courses, course)
	}
	if len(courses) == 0 {
		return nil
	}
	s.log.Info("Seeding courses", "count", len(courses))
	return db.CreateInBatches(&courses, 50).Error
}

func (s *Seeder) seedEnrollments(db *gorm.DB) error {
	var userIDs, courseIDs []uint
	if err := db.Model(&models.User{}).Where("is_admin = ?", false).Pluck("id", &userIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Course{}).Pluck("id", &courseIDs).Error; err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		return nil
	}

	var rows []models.Enrollment
	for _, uid := range userIDs {
		n := 1 + s.rnd.Intn(5)
		for _, idx := range s.rnd.Perm(len(courseIDs)) {
			if n == 0 {
				break
			}
			rows = append(rows, models.Enrollment{UserID: uid, CourseID: courseIDs[idx]})
			n--
		}
	}
	if len(rows) == 0 {
		return nil
	}
	s.log.Info("Seeding enrollments", "count", len(rows))
	return db.CreateInBatches(&rows, 200).Error
}

func (s *Seeder) pick(from []string) string {
	if len(from) == 0 {
		return "General Course"
	}
	return from[s.rnd.Intn(len(from))]
}

func (s *Seeder) round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
