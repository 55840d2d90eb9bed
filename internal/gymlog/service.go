package gymlog

import (
	"context"
	"time"

	"github.com/2beens/gymsheets/internal/sheets"
	"github.com/2beens/gymsheets/internal/telemetry/metrics"
	"github.com/2beens/gymsheets/internal/telemetry/tracing"
	"github.com/2beens/gymsheets/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=gymlog_test

type rowAppender interface {
	AppendRows(ctx context.Context, sheetName string, rows [][]any) sheets.Result
}

const (
	SheetLog    = "Log"
	SheetWeight = "Weight"
	SheetEffort = "Effort"

	sessionIDLayout = "2006-01-02"
)

type LogWorkoutRequest struct {
	Command       string    `json:"command"`
	SessionNumber FlexValue `json:"sessionNumber"`
	SessionID     FlexValue `json:"sessionId,omitempty"`
}

type LogWorkoutResponse struct {
	OK         bool          `json:"ok"`
	SessionID  string        `json:"sessionId"`
	LoggedSets int           `json:"loggedSets"`
	Rows       []workout.Row `json:"rows"`
}

type LogWeightRequest struct {
	Weight    FlexValue `json:"weight"`
	SessionID FlexValue `json:"sessionId,omitempty"`
}

type LogEffortRequest struct {
	Effort    FlexValue `json:"effort"`
	SessionID FlexValue `json:"sessionId,omitempty"`
}

// LogMeasurementResponse is returned for single value logs (weight, effort)
type LogMeasurementResponse struct {
	OK  bool    `json:"ok"`
	Row [][]any `json:"row"`
}

type ServiceOption func(s *Service)

// WithClock overrides the clock used for the default session id
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	appender       rowAppender
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(appender rowAppender, metricsManager *metrics.Manager, opts ...ServiceOption) *Service {
	s := &Service{
		appender:       appender,
		metricsManager: metricsManager,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) LogWorkout(ctx context.Context, req LogWorkoutRequest) (_ *LogWorkoutResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymlog.workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.Command == "" {
		return nil, ErrMissingCommand
	}
	if req.SessionNumber.IsMissing() {
		return nil, ErrMissingSessionNumber
	}

	sessionID := s.sessionIDOrToday(req.SessionID)
	parsed := workout.Parse(req.Command, sessionID, req.SessionNumber.Value())
	span.SetAttributes(
		attribute.Int("rows", len(parsed.Rows)),
		attribute.Int("dropped", len(parsed.Dropped)),
	)

	if len(parsed.Dropped) > 0 {
		for _, d := range parsed.Dropped {
			log.Debugf("workout chunk [%s] dropped: %s", d.Chunk, d.Reason)
		}
		if s.metricsManager != nil {
			s.metricsManager.CounterDroppedChunks.Add(float64(len(parsed.Dropped)))
		}
	}

	if len(parsed.Rows) == 0 {
		return nil, ErrNoSetsParsed
	}

	if err := s.append(ctx, SheetLog, workout.RowsValues(parsed.Rows)); err != nil {
		return nil, err
	}

	return &LogWorkoutResponse{
		OK:         true,
		SessionID:  sessionID,
		LoggedSets: len(parsed.Rows),
		Rows:       parsed.Rows,
	}, nil
}

func (s *Service) LogWeight(ctx context.Context, req LogWeightRequest) (_ *LogMeasurementResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymlog.weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.Weight.IsMissing() {
		return nil, ErrMissingWeight
	}
	return s.logMeasurement(ctx, SheetWeight, req.SessionID, req.Weight)
}

func (s *Service) LogEffort(ctx context.Context, req LogEffortRequest) (_ *LogMeasurementResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymlog.effort")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.Effort.IsMissing() {
		return nil, ErrMissingEffort
	}
	return s.logMeasurement(ctx, SheetEffort, req.SessionID, req.Effort)
}

func (s *Service) logMeasurement(ctx context.Context, sheet string, sessionID, value FlexValue) (*LogMeasurementResponse, error) {
	row := [][]any{{s.sessionIDOrToday(sessionID), value.Value()}}
	if err := s.append(ctx, sheet, row); err != nil {
		return nil, err
	}
	return &LogMeasurementResponse{
		OK:  true,
		Row: row,
	}, nil
}

func (s *Service) append(ctx context.Context, sheet string, rows [][]any) error {
	start := time.Now()
	res := s.appender.AppendRows(ctx, sheet, rows)
	if s.metricsManager != nil {
		s.metricsManager.HistStoreAppendDuration.Observe(time.Since(start).Seconds())
	}

	if !res.OK {
		log.Errorf("append %d rows to sheet [%s]: %s", len(rows), sheet, res.Error)
		if s.metricsManager != nil {
			s.metricsManager.CounterStoreFailures.WithLabelValues(sheet).Inc()
		}
		return &StoreError{Sheet: sheet, Message: res.Error}
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterLoggedRows.WithLabelValues(sheet).Add(float64(len(rows)))
	}
	return nil
}

// sessionIDOrToday falls back to the current UTC date when no session id was given
func (s *Service) sessionIDOrToday(sessionID FlexValue) string {
	if !sessionID.IsMissing() {
		return sessionID.String()
	}
	return s.now().UTC().Format(sessionIDLayout)
}
