// Package jobs tareas periódicas en segundo plano (gocron).
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// ReplenishmentLister fuente de la lista de reposición.
type ReplenishmentLister interface {
	GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error)
}

// Scheduler envuelve gocron con los jobs del servicio.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *logger.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewScheduler crea el scheduler sin arrancarlo.
func NewScheduler(log *logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("jobs: crear scheduler: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{scheduler: s, log: log, jobs: make(map[string]gocron.Job)}, nil
}

// AddLowStockCheck registra el chequeo de stock bajo cada interval. interval <= 0 no registra nada.
func (s *Scheduler) AddLowStockCheck(interval time.Duration, job *LowStockJob) error {
	if interval <= 0 {
		s.log.Info().Msg("jobs: low-stock check desactivado")
		return nil
	}
	return s.add(LowStockJobName, interval, job.Run)
}

func (s *Scheduler) add(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := fn(context.Background()); err != nil {
				s.log.Error().Err(err).Str("job", name).Msg("jobs: ejecución fallida")
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("jobs: registrar %s: %w", name, err)
	}
	s.jobs[name] = job
	s.log.Info().Str("job", name).Dur("interval", interval).Msg("jobs: registrado")
	return nil
}

// Jobs nombres de los jobs registrados.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// Start arranca el scheduler.
func (s *Scheduler) Start() {
	s.log.Info().Int("jobs", len(s.Jobs())).Msg("jobs: scheduler iniciado")
	s.scheduler.Start()
}

// Shutdown detiene el scheduler esperando a los jobs en curso.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
