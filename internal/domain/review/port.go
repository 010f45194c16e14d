package review

import "context"

//go:generate mockgen -source=port.go -destination=mocks/generator_mock.go -package=mocks

// Generator is the external generative-model capability.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, userText string) (string, error)
	Name() string
}
