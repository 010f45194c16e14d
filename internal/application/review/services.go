package review

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/ai-code-reviewer/internal/application"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
)

// Service is the model client: it guards the provider with the pre-filter
// and sends every accepted snippet with the same system instruction.
type Service struct {
	gen         review.Generator
	instruction string
	log         logrus.FieldLogger
	clock       application.Clock
}

// NewService wires a generator. A nil clock uses the system clock.
func NewService(gen review.Generator, instruction string, log logrus.FieldLogger, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{gen: gen, instruction: instruction, log: log, clock: clock}
}

// Review returns the provider's critique of code unmodified, or the refusal
// message when code looks conversational. Any provider failure is reported
// as review.ErrGenerationFailed.
func (s *Service) Review(ctx context.Context, code string) (review.Result, error) {
	if code == "" {
		return review.Result{}, review.ErrCodeRequired
	}

	if review.IsConversational(code) {
		s.log.WithField("bytes", len(code)).Info("rejected non-code input")
		return review.Result{Text: review.RefusalMessage, Refused: true}, nil
	}

	start := s.clock.Now()
	text, err := s.gen.Generate(ctx, s.instruction, code)
	elapsed := s.clock.Now().Sub(start)

	fields := logrus.Fields{
		"provider": s.gen.Name(),
		"bytes":    len(code),
		"elapsed":  elapsed.String(),
	}
	if err != nil {
		fields["quota_exceeded"] = errors.Is(err, review.ErrQuotaExceeded)
		s.log.WithFields(fields).WithError(err).Error("AI service error")
		return review.Result{}, review.ErrGenerationFailed
	}

	s.log.WithFields(fields).Info("review generated")
	return review.Result{Text: text}, nil
}
