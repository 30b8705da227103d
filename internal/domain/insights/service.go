// Package insights une la capa de datos con el cálculo de salud: arma el
// snapshot de cada mascota, produce el reporte, lo cachea y publica los gaps.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-health/internal/domain/activities"
	"pet-health/internal/domain/healthscore"
	"pet-health/internal/domain/medications"
	"pet-health/internal/domain/notifications"
	"pet-health/internal/domain/pets"
	"pet-health/internal/domain/vaccines"
	"pet-health/internal/platform/logger"
	"pet-health/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

var ErrNotFound = errors.New("pet not found")

const (
	sourceAPI   = "api"
	sourceBatch = "batch"
)

// Report es la vista de salud de una mascota en un instante.
type Report struct {
	PetID           string                           `json:"pet_id"`
	PetName         string                           `json:"pet_name"`
	Score           int                              `json:"score"`
	Label           healthscore.Label                `json:"label"`
	Components      []healthscore.ComponentScore     `json:"components"`
	StoredStatus    healthscore.PetStatus            `json:"stored_status"`
	SuggestedStatus healthscore.PetStatus            `json:"suggested_status"`
	StatusMismatch  bool                             `json:"status_mismatch"`
	Gaps            []healthscore.NotificationIntent `json:"gaps"`
	EvaluatedAt     time.Time                        `json:"evaluated_at"`
}

type Options struct {
	Pets          *pets.Service
	Vaccines      *vaccines.Service
	Medications   *medications.Service
	Activities    *activities.Service
	Notifications *notifications.Service

	Cache    Cache         // nil => sin cache
	CacheTTL time.Duration // <= 0 => 60s
	// Concurrency acota las evaluaciones en paralelo de EvaluateOwner.
	Concurrency int
	Logger      logger.Logger
}

type Service struct {
	pets          *pets.Service
	vaccines      *vaccines.Service
	medications   *medications.Service
	activities    *activities.Service
	notifications *notifications.Service

	cache       Cache
	ttl         time.Duration
	concurrency int
	log         logger.Logger
	now         func() time.Time

	// gens cuenta invalidaciones por mascota; un reporte calculado antes de
	// una invalidación no se guarda en cache.
	gensMu sync.Mutex
	gens   map[string]uint64
}

func NewService(opts Options) *Service {
	s := &Service{
		pets:          opts.Pets,
		vaccines:      opts.Vaccines,
		medications:   opts.Medications,
		activities:    opts.Activities,
		notifications: opts.Notifications,
		cache:         opts.Cache,
		ttl:           opts.CacheTTL,
		concurrency:   opts.Concurrency,
		log:           opts.Logger,
		now:           time.Now,
		gens:          make(map[string]uint64),
	}
	if s.cache == nil {
		s.cache = nopCache{}
	}
	if s.ttl <= 0 {
		s.ttl = 60 * time.Second
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	return s
}

// Evaluate devuelve el reporte de la mascota, desde cache si está vigente.
func (s *Service) Evaluate(ctx context.Context, petID string) (Report, error) {
	return s.evaluate(ctx, petID, sourceAPI)
}

// EvaluateOwner evalúa todas las mascotas del dueño en paralelo.
// El orden del resultado sigue al de pets.ListByOwner.
func (s *Service) EvaluateOwner(ctx context.Context, ownerUserID string) ([]Report, error) {
	list, err := s.pets.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range list {
		g.Go(func() error {
			r, err := s.evaluate(gctx, p.ID, sourceBatch)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// SyncGaps publica los gaps actuales de la mascota como notificaciones de su dueño.
// Devuelve solo las notificaciones nuevas (las pendientes no se duplican).
func (s *Service) SyncGaps(ctx context.Context, petID string) ([]notifications.Notification, error) {
	r, err := s.Evaluate(ctx, petID)
	if err != nil {
		return nil, err
	}
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return nil, ErrNotFound
	}

	created, err := s.notifications.Publish(ctx, owner, r.Gaps)
	if err != nil {
		return nil, err
	}
	if len(created) > 0 {
		s.log.Info("health gaps published", map[string]any{
			"pet_id": petID,
			"count":  len(created),
		})
	}
	return created, nil
}

// Invalidate descarta el reporte cacheado. Se engancha en OnChange de cada servicio.
func (s *Service) Invalidate(ctx context.Context, petID string) {
	s.gensMu.Lock()
	s.gens[petID]++
	s.gensMu.Unlock()

	if err := s.cache.Delete(ctx, cacheKey(petID)); err != nil {
		s.log.Warn("report cache invalidation failed", map[string]any{"pet_id": petID, "err": err})
	}
}

func (s *Service) evaluate(ctx context.Context, petID string, source string) (Report, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Report{}, ErrNotFound
	}

	if r, ok := s.fromCache(ctx, petID); ok {
		return r, nil
	}

	gen := s.generation(petID)
	snap, err := s.snapshot(ctx, petID)
	if err != nil {
		return Report{}, err
	}

	r := buildReport(snap, s.now())
	s.observe(r, source)
	s.toCache(ctx, r, gen)
	return r, nil
}

func (s *Service) generation(petID string) uint64 {
	s.gensMu.Lock()
	defer s.gensMu.Unlock()
	return s.gens[petID]
}

func (s *Service) snapshot(ctx context.Context, petID string) (healthscore.Snapshot, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return healthscore.Snapshot{}, ErrNotFound
	}

	var (
		vs []vaccines.Vaccine
		ms []medications.Medication
		as []activities.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vs, err = s.vaccines.ListByPet(gctx, petID)
		return err
	})
	g.Go(func() (err error) {
		ms, err = s.medications.ListByPet(gctx, petID)
		return err
	})
	g.Go(func() (err error) {
		as, err = s.activities.All(gctx, petID)
		return err
	})
	if err := g.Wait(); err != nil {
		return healthscore.Snapshot{}, err
	}

	return healthscore.Snapshot{
		Pet:         toProfile(p),
		Vaccines:    toVaccines(vs),
		Medications: toMedications(ms, s.now()),
		Activities:  toActivities(as),
	}, nil
}

// buildReport es puro: mismo snapshot y now => mismo reporte.
func buildReport(snap healthscore.Snapshot, now time.Time) Report {
	b := healthscore.Evaluate(snap, now)
	suggested := healthscore.SuggestStatus(b.Score, snap.Vaccines)

	return Report{
		PetID:           snap.Pet.ID,
		PetName:         snap.Pet.Name,
		Score:           b.Score,
		Label:           healthscore.ResolveHealthLabel(b.Score),
		Components:      b.Components,
		StoredStatus:    snap.Pet.Status,
		SuggestedStatus: suggested,
		StatusMismatch:  healthscore.DetectStatusMismatch(snap.Pet.Status, suggested),
		Gaps:            healthscore.ComputeHealthGaps(snap.Pet, snap.Vaccines),
		EvaluatedAt:     now,
	}
}

func (s *Service) observe(r Report, source string) {
	metrics.EvaluationsTotal.WithLabelValues(source).Inc()
	metrics.HealthScore.Observe(float64(r.Score))
	for _, g := range r.Gaps {
		metrics.GapsTotal.WithLabelValues(g.Rule).Inc()
	}
	if r.StatusMismatch {
		metrics.StatusMismatchTotal.Inc()
		s.log.Info("pet status out of date", map[string]any{
			"pet_id":    r.PetID,
			"stored":    r.StoredStatus,
			"suggested": r.SuggestedStatus,
			"score":     r.Score,
		})
	}
}

func (s *Service) fromCache(ctx context.Context, petID string) (Report, bool) {
	raw, ok, err := s.cache.Get(ctx, cacheKey(petID))
	if err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		s.log.Warn("report cache read failed", map[string]any{"pet_id": petID, "err": err})
		return Report{}, false
	}
	if !ok {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return Report{}, false
	}

	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return Report{}, false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return r, true
}

// toCache guarda r solo si no hubo invalidaciones desde gen. Si una llega
// durante el Set, se borra lo escrito: Invalidate incrementa antes de borrar.
func (s *Service) toCache(ctx context.Context, r Report, gen uint64) {
	if s.generation(r.PetID) != gen {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(r.PetID), raw, s.ttl); err != nil {
		s.log.Warn("report cache write failed", map[string]any{"pet_id": r.PetID, "err": err})
		return
	}
	if s.generation(r.PetID) != gen {
		_ = s.cache.Delete(ctx, cacheKey(r.PetID))
	}
}
