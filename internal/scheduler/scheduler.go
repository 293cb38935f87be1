package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"NiftyPulse/internal/calendar"
	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/recorder"
	"NiftyPulse/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the 15-minute signal cycle and the daily trend-bias summary.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Notifier  *notifier.Notifier
	Recorder  recorder.Recorder
	Calendar  *calendar.Calendar
	Location  *time.Location
	Symbol    string
	Debug     bool
	Ctx       context.Context
}

// NewScheduler creates a Scheduler running in the given exchange timezone.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine,
	nt *notifier.Notifier, rec recorder.Recorder, cal *calendar.Calendar,
	loc *time.Location, symbol string, debug bool) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Collector: col,
		Engine:    eng,
		Notifier:  nt,
		Recorder:  rec,
		Calendar:  cal,
		Location:  loc,
		Symbol:    symbol,
		Debug:     debug,
		Ctx:       ctx,
	}
}

// RegisterAll registers the cycle and daily summary tasks.
func (s *Scheduler) RegisterAll(cycleCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(cycleCron, s.cycleTask); err != nil {
		return fmt.Errorf("register cycle task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailySummaryTask); err != nil {
		return fmt.Errorf("register daily summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes the signal cycle immediately (for RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.cycleTask()
}

func (s *Scheduler) cycleTask() {
	log.Println("[INFO] running signal cycle")
	bars, source, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[WARN] no valid data fetched, skipping cycle: %v", err)
		return
	}

	set, err := s.Engine.Evaluate(bars)
	if err != nil {
		switch {
		case errors.Is(err, strategy.ErrInsufficientHistory):
			log.Printf("[WARN] skipping cycle: %v", err)
		case errors.Is(err, strategy.ErrMalformedSeries):
			log.Printf("[ERROR] %s delivered a malformed series, skipping cycle: %v", source, err)
		default:
			log.Printf("[ERROR] evaluate: %v", err)
		}
		return
	}

	now := time.Now().In(s.Location)
	for _, msg := range notifier.SignalMessages(set) {
		s.sendAndRecord("SIGNAL", notifier.Envelope(s.Symbol, msg, now))
	}
	if !set.Any() {
		log.Println("[INFO] no new signals this cycle")
	}

	if s.Debug && set.Status != nil {
		s.sendAndRecord("STATUS", notifier.Envelope(s.Symbol, notifier.FormatEMAStatus(set.Status), now))
	}

	evt := &recorder.CycleEvent{
		Source:       source,
		Bars:         len(bars),
		EMABullCross: set.EMABullCross,
		EMABearCross: set.EMABearCross,
		BullishDiv:   set.BullishDivergence,
		BearishDiv:   set.BearishDivergence,
	}
	if st := set.Status; st != nil {
		evt.Close = st.Close
		evt.RSI = st.RSI
		evt.FastEMA = st.FastEMA
		evt.SlowEMA = st.SlowEMA
	}
	if err := s.Recorder.RecordCycle(evt); err != nil {
		log.Printf("[ERROR] record cycle: %v", err)
	}
}

func (s *Scheduler) dailySummaryTask() {
	today := time.Now().In(s.Location)
	if s.Calendar.IsMarketHoliday(today) {
		log.Println("[INFO] market closed today, skipping daily summary")
		return
	}

	log.Println("[INFO] running daily summary")
	bars, _, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[WARN] no data for daily summary: %v", err)
		return
	}

	sum, err := s.Engine.TrendBias(bars)
	if err != nil {
		log.Printf("[WARN] skipping daily summary: %v", err)
		return
	}

	s.sendAndRecord("DAILY_SUMMARY", notifier.Envelope(s.Symbol, notifier.FormatDailySummary(s.Symbol, sum), today))

	if err := s.Recorder.RecordSummary(&recorder.SummaryEvent{
		Close:   sum.Close,
		FastEMA: sum.FastEMA,
		SlowEMA: sum.SlowEMA,
		Diff:    sum.Diff,
		Bias:    sum.Bias,
	}); err != nil {
		log.Printf("[ERROR] record summary: %v", err)
	}
}

func (s *Scheduler) sendAndRecord(kind, text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
	if err := s.Recorder.RecordAlert(&recorder.AlertEvent{Kind: kind, Message: text}); err != nil {
		log.Printf("[ERROR] record alert: %v", err)
	}
}
