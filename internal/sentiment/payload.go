package sentiment

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const maxNesting = 4

type classifyRequest struct {
	Inputs  string          `json:"inputs"`
	Options *requestOptions `json:"options,omitempty"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type labelScore struct {
	Label string
	Score float64
}

var errNoLabel = errors.New("no label/score object in payload")

// topLabel unwraps a pipeline payload. Depending on the model and endpoint the
// {label, score} objects arrive bare, in a list, or in a list of lists; the
// highest-scoring object of the innermost list wins.
func topLabel(data []byte) (labelScore, error) {
	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return labelScore{}, fmt.Errorf("decode payload: %w", err)
	}
	return pickTop(node, 0)
}

func pickTop(node any, depth int) (labelScore, error) {
	if depth > maxNesting {
		return labelScore{}, fmt.Errorf("payload nested deeper than %d levels", maxNesting)
	}

	switch v := node.(type) {
	case map[string]any:
		return asLabelScore(v)
	case []any:
		if len(v) == 0 {
			return labelScore{}, errNoLabel
		}
		var (
			best  labelScore
			found bool
		)
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			ls, err := asLabelScore(obj)
			if err != nil {
				continue
			}
			if !found || ls.Score > best.Score {
				best, found = ls, true
			}
		}
		if found {
			return best, nil
		}
		return pickTop(v[0], depth+1)
	default:
		return labelScore{}, errNoLabel
	}
}

func asLabelScore(obj map[string]any) (labelScore, error) {
	label, ok := obj["label"].(string)
	if !ok || label == "" {
		return labelScore{}, errNoLabel
	}
	score, ok := obj["score"].(float64)
	if !ok {
		return labelScore{}, fmt.Errorf("label %q has no numeric score", label)
	}
	return labelScore{Label: label, Score: score}, nil
}
