package bench

import "github.com/xentlabs/xent-sub001/internal/config"

// applyZeroSum adjusts, in the in-memory aggregated BenchmarkResult only,
// each zero-sum pair's scores so that score(a) + score(b) == 0 per round
// (spec.md §4.D.4, §8 scenario 6): each player's effective score is its own
// raw reward total minus its counterparty's raw reward total for the same
// (game, map_seed). What's written to storage stays the raw, unadjusted
// per-player score, so resume logic never has to reconstruct a pairing
// that may not (yet) have both halves present.
func applyZeroSum(results []config.GameMapResults) []config.GameMapResults {
	byUnit := make(map[unitLookupKey]int, len(results))
	for i, r := range results {
		byUnit[unitLookupKey{r.GameMap.Name, r.GameMap.MapSeed, r.Player.Name}] = i
	}

	out := make([]config.GameMapResults, len(results))
	copy(out, results)

	seen := make(map[[2]int]bool)
	for i, r := range results {
		counterparty, ok := config.Counterparty(r.Player.Name)
		if !ok {
			continue
		}
		j, ok := byUnit[unitLookupKey{r.GameMap.Name, r.GameMap.MapSeed, counterparty}]
		if !ok {
			continue // counterparty hasn't run (yet); leave this player's raw score as-is
		}
		pairKey := [2]int{i, j}
		if pairKey[0] > pairKey[1] {
			pairKey[0], pairKey[1] = pairKey[1], pairKey[0]
		}
		if seen[pairKey] {
			continue
		}
		seen[pairKey] = true

		a, b := results[i], results[j]
		out[i] = adjustAgainst(a, b)
		out[j] = adjustAgainst(b, a)
	}
	return out
}

type unitLookupKey struct {
	game     string
	mapSeed  string
	player   config.PlayerName
}

// adjustAgainst returns a copy of mine with every round's score (and the
// unit total) reduced by theirs's corresponding raw score.
func adjustAgainst(mine, theirs config.GameMapResults) config.GameMapResults {
	adjusted := mine
	adjusted.RoundResults = make([]config.GameMapRoundResult, len(mine.RoundResults))
	rounds := make([]float64, len(mine.RoundResults))
	for i, round := range mine.RoundResults {
		counterpartyScore := 0.0
		if i < len(theirs.RoundResults) {
			counterpartyScore = theirs.RoundResults[i].Score
		}
		round.Score -= counterpartyScore
		adjusted.RoundResults[i] = round
		rounds[i] = round.Score
	}
	adjusted.Score = aggregateScore(rounds, mine.GameMap.Aggregation)
	return adjusted
}
