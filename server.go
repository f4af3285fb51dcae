package main

import (
	"byway/cache"
	"byway/config"
	adminController "byway/controllers/admin"
	authController "byway/controllers/auth"
	courseController "byway/controllers/course"
	instructorController "byway/controllers/instructor"
	userController "byway/controllers/user"
	"byway/middleware"
	"byway/repository"
	"byway/routers/adminRoutes"
	"byway/routers/authRoutes"
	"byway/routers/courseRoutes"
	"byway/routers/instructorRoutes"
	"byway/routers/userRoutes"
	"byway/services"
	"byway/utils/hasher"
	"byway/utils/logger"
	"byway/utils/notify"
	"byway/utils/token"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type deps struct {
	cfg      *config.Config
	db       *gorm.DB
	log      *logger.Logger
	notifier notify.Notifier
	cache    cache.Cache
	// accessLog disables the request log line when false (tests).
	accessLog bool
}

func newApp(d deps) *fiber.App {
	middleware.SetLogger(d.log)

	app := fiber.New(fiber.Config{
		AppName:      "Byway",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.cfg.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if d.accessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	tokens := token.NewIssuer(d.cfg.JWTKey, d.cfg.JWTIssuer, d.cfg.JWTAudience,
		time.Duration(d.cfg.JWTExpiresInMinutes)*time.Minute)
	passwords := hasher.New(d.cfg.SaltRound)

	courses := repository.NewCourseRepo(d.db)
	instructors := repository.NewInstructorRepo(d.db)
	users := repository.NewUserRepo(d.db)
	stats := repository.NewStatsRepo(d.db)

	catalog := services.NewCatalogService(courses, instructors, d.cache, d.log)
	purchase := services.NewPurchaseService(courses, users, d.notifier, services.NewPricing(d.cfg.TaxPercent), d.log)
	auth := services.NewAuthService(users, passwords, tokens, d.notifier, d.log)
	admin := services.NewAdminService(stats, d.log)

	api := app.Group("/api", middleware.OptionalJWT(tokens))

	authRoutes.SetupAuthRoutes(api, authController.New(auth))
	courseRoutes.SetupCourseRoutes(api, courseController.New(catalog, courses, instructors))
	instructorRoutes.SetupInstructorRoutes(api, instructorController.New(catalog, instructors))
	userRoutes.SetupUserRoutes(api, userController.New(users, purchase, passwords))
	adminRoutes.SetupAdminRoutes(api, adminController.New(admin))

	return app
}
