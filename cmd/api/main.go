package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/course-service/internal/api/http"
	"github.com/spec-kit/course-service/internal/api/http/handlers"
	"github.com/spec-kit/course-service/internal/auth"
	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/events"
	"github.com/spec-kit/course-service/internal/identity"
	"github.com/spec-kit/course-service/internal/mail"
	"github.com/spec-kit/course-service/internal/observability"
	"github.com/spec-kit/course-service/internal/persistence"
	"github.com/spec-kit/course-service/internal/repository"
	"github.com/spec-kit/course-service/internal/service"
	"github.com/spec-kit/course-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	identityRepo := repository.NewIdentityRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	lectureRepo := repository.NewLectureRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifier := mail.FromConfig(cfg.Mail, logger)

	identityService := identity.NewService(*cfg, identity.Dependencies{
		IdentityRepo: identityRepo,
		ProfileRepo:  profileRepo,
	})
	courseService := service.NewCourseService(courseRepo, lectureRepo, dispatcher)
	enrollmentService := service.NewEnrollmentService(service.EnrollmentDependencies{
		RegistrationRepo: registrationRepo,
		LectureRepo:      lectureRepo,
		Identity:         identityService,
		Notifier:         notifier,
		Dispatcher:       dispatcher,
		Counters:         redis,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(identityService)
	coursesHandler := handlers.NewCoursesHandler(courseService, enrollmentService)
	lecturesHandler := handlers.NewLecturesHandler(courseService, enrollmentService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Courses:        coursesHandler,
		Lectures:       lecturesHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
