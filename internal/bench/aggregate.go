package bench

import "github.com/xentlabs/xent-sub001/internal/config"

// aggregateScore reduces a unit's per-round scores to one number, per the
// game's configured Aggregation (spec.md §9: "implementers should read
// sign/combination off the DSL expression rather than inferring it").
// The empty Aggregation defaults to best-of-N.
func aggregateScore(scores []float64, agg config.Aggregation) float64 {
	if len(scores) == 0 {
		return 0
	}
	switch agg {
	case config.AggregationLast:
		return scores[len(scores)-1]
	case config.AggregationSum:
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		return sum
	case config.AggregationBest, "":
		best := scores[0]
		for _, s := range scores[1:] {
			if s > best {
				best = s
			}
		}
		return best
	default:
		best := scores[0]
		for _, s := range scores[1:] {
			if s > best {
				best = s
			}
		}
		return best
	}
}
