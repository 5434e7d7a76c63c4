package persistence

import (
	"github.com/roylee0704/gron"
	"nutrilog/internal/persistence/interfaces"
	"nutrilog/internal/providers"
	"nutrilog/internal/services"
	"nutrilog/internal/structures"
)

// Scheduler drives the journal's persistence lifecycle: restore on start,
// periodic retry of failed writes, final flush on shutdown.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	journal services.JournalServiceInterface
	cron    *gron.Cron
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.RetryInterval), func() {
		err := s.journal.FlushIfDirty()
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Retry of entry persistence failed: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.journal.Restore()
	return nil
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting entries...")
	err := s.journal.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting entries: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, journal services.JournalServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		journal: journal,
	}
}
