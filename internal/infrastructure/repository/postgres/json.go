package postgres

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
)

// JSONB column codecs. Assignments, weights, and score breakdowns are stored
// as documents; their shape is owned by the domain types, not the schema.

func encodeAssignments(assignments []roster.Assignment) (string, error) {
	if len(assignments) == 0 {
		return "[]", nil
	}
	encoded, err := sonic.Marshal(assignments)
	if err != nil {
		return "", fmt.Errorf("encode assignments: %w", err)
	}
	return string(encoded), nil
}

func decodeAssignments(raw string) ([]roster.Assignment, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var out []roster.Assignment
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return out, nil
}

func encodeWeights(weights scoring.Weights) (string, error) {
	encoded, err := sonic.Marshal(weights)
	if err != nil {
		return "", fmt.Errorf("encode weights: %w", err)
	}
	return string(encoded), nil
}

func decodeWeights(raw string) (scoring.Weights, error) {
	var out scoring.Weights
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return scoring.Weights{}, fmt.Errorf("decode weights: %w", err)
	}
	return out, nil
}

func encodeBreakdown(breakdown []scoring.PlayerContribution) (string, error) {
	if len(breakdown) == 0 {
		return "[]", nil
	}
	encoded, err := sonic.Marshal(breakdown)
	if err != nil {
		return "", fmt.Errorf("encode score breakdown: %w", err)
	}
	return string(encoded), nil
}

func decodeBreakdown(raw string) ([]scoring.PlayerContribution, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var out []scoring.PlayerContribution
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode score breakdown: %w", err)
	}
	return out, nil
}
