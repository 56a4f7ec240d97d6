package generation

import (
	"context"

	"endurafit/workout-service/internal/domain"
)

// Generator runs the full generation pipeline: prompt building, the remote
// completion call, and response parsing.
type Generator struct {
	client *Client
}

// NewGenerator wires the pipeline around a completion client.
func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

// GeneratePlan produces a WorkoutPlan for a complete preference set. The
// returned plan carries the preferences verbatim; any failure surfaces as an
// AppError from the network or parser taxonomy.
func (g *Generator) GeneratePlan(ctx context.Context, prefs domain.Preferences) (*domain.WorkoutPlan, error) {
	prompt := BuildPrompt(prefs)
	raw, err := g.client.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return ParsePlan(raw, prefs)
}
