// Package sentiment serves predictions from a trained model. A Service is
// loaded once at startup and is either Ready or Unloaded for the rest of its
// life.
package sentiment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/model"
)

type State string

const (
	StateUnloaded State = "unloaded"
	StateReady    State = "ready"
)

// ArtifactLoader is satisfied by every store.ArtifactStore.
type ArtifactLoader interface {
	LoadLatest(ctx context.Context) (*model.Artifacts, error)
}

type Options struct {
	// MaxTextLength rejects longer inputs, in runes. 0 disables the check.
	MaxTextLength int
}

type Prediction struct {
	Text          string             `json:"text"`
	Label         string             `json:"sentiment"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

type Health struct {
	Ready     bool      `json:"ready"`
	State     State     `json:"state"`
	ModelID   string    `json:"model_id,omitempty"`
	TrainedAt time.Time `json:"trained_at,omitzero"`
	Classes   []string  `json:"classes,omitempty"`
	Features  int       `json:"features,omitempty"`
}

type Service struct {
	opts     Options
	pipeline atomic.Pointer[model.Pipeline]
	loaded   atomic.Bool
}

func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Load attempts to become Ready from the latest stored model. It never
// fails: missing or corrupt artifacts leave the service Unloaded. Only the
// first call has any effect.
func (s *Service) Load(ctx context.Context, loader ArtifactLoader) State {
	if !s.loaded.CompareAndSwap(false, true) {
		return s.State()
	}

	a, err := loader.LoadLatest(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrInternal) {
			logger.Error("model artifacts are corrupt", "err", err)
		} else {
			logger.Warn("no model loaded", "err", err)
		}
		return StateUnloaded
	}
	return s.use(a)
}

// LoadArtifacts is Load for artifacts already in memory.
func (s *Service) LoadArtifacts(a *model.Artifacts) State {
	if !s.loaded.CompareAndSwap(false, true) {
		return s.State()
	}
	return s.use(a)
}

func (s *Service) use(a *model.Artifacts) State {
	p, err := model.NewPipeline(a)
	if err != nil {
		logger.Error("model artifacts are unusable", "err", err)
		return StateUnloaded
	}
	s.pipeline.Store(p)
	logger.Info("model loaded", "id", p.ID, "classes", p.Classes(), "features", p.Vectorizer.Dim())
	return StateReady
}

func (s *Service) State() State {
	if s.pipeline.Load() == nil {
		return StateUnloaded
	}
	return StateReady
}

func (s *Service) Ready() bool {
	return s.State() == StateReady
}

func (s *Service) Health() Health {
	p := s.pipeline.Load()
	if p == nil {
		return Health{State: StateUnloaded}
	}
	return Health{
		Ready:     true,
		State:     StateReady,
		ModelID:   p.ID,
		TrainedAt: p.CreatedAt,
		Classes:   p.Classes(),
		Features:  p.Vectorizer.Dim(),
	}
}

// Classify validates text before checking readiness, so a bad request is
// reported as such even when no model is loaded.
func (s *Service) Classify(text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, errs.Validation("No text provided")
	}
	if s.opts.MaxTextLength > 0 {
		if n := utf8.RuneCountInString(text); n > s.opts.MaxTextLength {
			return Prediction{}, errs.Validation("text is %d characters, limit is %d", n, s.opts.MaxTextLength)
		}
	}

	p := s.pipeline.Load()
	if p == nil {
		logger.WarnOnce("classify requested but no model is loaded")
		return Prediction{}, errs.NotReady("Model not loaded")
	}

	res, err := p.Predict(text)
	if err != nil {
		return Prediction{}, errs.Internal("classify: %v", err)
	}

	classes := p.Classes()
	proba := make(map[string]float64, len(classes))
	for i, c := range classes {
		proba[c] = res.Probabilities[i]
	}
	return Prediction{
		Text:          text,
		Label:         res.Label,
		Confidence:    res.Confidence,
		Probabilities: proba,
	}, nil
}
