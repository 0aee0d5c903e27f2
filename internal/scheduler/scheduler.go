package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/config"
)

type CreditService interface {
	RunClaims(ctx context.Context) error
}

type InterestService interface {
	RunAccruals(ctx context.Context) error
}

// Scheduler drives the two recurring batch engines: monthly installment
// claims and savings interest accrual.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.Config
	credits  CreditService
	interest InterestService
}

func New(cfg config.Config, credits CreditService, interest InterestService) *Scheduler {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		credits:  credits,
		interest: interest,
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.cfg.ClaimSchedule, func() {
		if err := s.credits.RunClaims(context.Background()); err != nil {
			log.Printf("credit claim run failed: %v", err)
		}
	}); err != nil {
		log.Printf("failed to schedule credit claims: %v", err)
	} else {
		log.Printf("scheduled credit claims: %s", s.cfg.ClaimSchedule)
	}

	if _, err := s.cron.AddFunc(s.cfg.InterestSchedule, func() {
		if err := s.interest.RunAccruals(context.Background()); err != nil {
			log.Printf("interest accrual run failed: %v", err)
		}
	}); err != nil {
		log.Printf("failed to schedule interest accrual: %v", err)
	} else {
		log.Printf("scheduled interest accrual: %s", s.cfg.InterestSchedule)
	}

	s.cron.Start()
}

// Stop returns a context that completes once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
