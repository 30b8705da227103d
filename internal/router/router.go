package router

import (
	"database/sql"
	"net/http"
	"time"

	cachemem "pet-health/internal/adapters/cache/memory"
	mem "pet-health/internal/adapters/storage/memory"
	pg "pet-health/internal/adapters/storage/postgres"
	"pet-health/internal/docs"
	"pet-health/internal/domain/activities"
	"pet-health/internal/domain/insights"
	"pet-health/internal/domain/medications"
	"pet-health/internal/domain/notifications"
	"pet-health/internal/domain/pets"
	"pet-health/internal/domain/vaccines"
	"pet-health/internal/middleware"
	"pet-health/internal/platform/logger"
	"pet-health/internal/platform/metrics"
	"pet-health/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Cache de reportes; nil => cache en proceso.
	Cache    insights.Cache
	CacheTTL time.Duration

	// Deliverer externo de notificaciones; nil => solo se guardan.
	Deliverer notifications.Deliverer

	// Evaluaciones en paralelo para /me/health.
	Concurrency int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	var (
		petRepo          pets.Repository
		activityRepo     activities.Repository
		vaccineRepo      vaccines.Repository
		medicationRepo   medications.Repository
		notificationRepo notifications.Repository
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		activityRepo = pg.NewActivitiesRepo(opts.DB)
		vaccineRepo = pg.NewVaccinesRepo(opts.DB)
		medicationRepo = pg.NewMedicationsRepo(opts.DB)
		notificationRepo = pg.NewNotificationsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		activityRepo = mem.NewActivityRepo()
		vaccineRepo = mem.NewVaccineRepo()
		medicationRepo = mem.NewMedicationRepo()
		notificationRepo = mem.NewNotificationRepo()
	}

	cache := opts.Cache
	if cache == nil {
		cache = cachemem.NewCache()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	activitiesSvc := activities.NewService(activityRepo)
	vaccinesSvc := vaccines.NewService(vaccineRepo)
	medicationsSvc := medications.NewService(medicationRepo)
	notificationsSvc := notifications.NewService(notificationRepo, opts.Deliverer, log.With(map[string]any{"module": "notifications"}))
	insightsSvc := insights.NewService(insights.Options{
		Pets:          petsSvc,
		Vaccines:      vaccinesSvc,
		Medications:   medicationsSvc,
		Activities:    activitiesSvc,
		Notifications: notificationsSvc,
		Cache:         cache,
		CacheTTL:      opts.CacheTTL,
		Concurrency:   opts.Concurrency,
		Logger:        log.With(map[string]any{"module": "insights"}),
	})

	// Cualquier cambio en los registros de una mascota invalida su reporte.
	petsSvc.OnChange(insightsSvc.Invalidate)
	activitiesSvc.OnChange(insightsSvc.Invalidate)
	vaccinesSvc.OnChange(insightsSvc.Invalidate)
	medicationsSvc.OnChange(insightsSvc.Invalidate)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	activities.RegisterRoutes(r, activitiesSvc, petsSvc)
	vaccines.RegisterRoutes(r, vaccinesSvc, petsSvc)
	medications.RegisterRoutes(r, medicationsSvc, petsSvc)
	notifications.RegisterRoutes(r, notificationsSvc)
	insights.RegisterRoutes(r, insightsSvc, petsSvc)

	return r
}
