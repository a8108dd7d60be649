// Package presentation implements the pure (state, history, metadata) →
// prompt_text functions spec.md §4.J names at config time: single, multi,
// dex, and sequence, reimplemented (not translated) from
// original_source/games/*.py in Go idiom.
package presentation

import (
	"fmt"
	"strings"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// State is the public register snapshot a presentation function may read;
// it must never expose anything outside PublicRegisters (spec.md §4.J).
type State map[string]xtypes.Value

func (s State) text(name string) string {
	v, ok := s[name]
	if !ok {
		return ""
	}
	return v.ToXString().Primary
}

// Function renders a prompt from the round's public state, its event
// history so far, and the benchmark's metadata.
type Function func(state State, history []config.EventJSON, metadata config.XentMetadata) string

var registry = map[string]Function{}

// Register adds a named presentation function to the registry.
func Register(name string, fn Function) {
	registry[name] = fn
}

// Lookup resolves a presentation function by name (spec.md §4.J: "Named
// at config time; the runtime resolves the name to a function").
func Lookup(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

func init() {
	Register("single", Single)
	Register("multi", Multi)
	Register("dex", Dex)
	Register("sequence", Sequence)
}

const moveInstructionsFirst = "Provide your prefix inside of <move></move> tags. Any other text in your response will be ignored. You will be given feedback on your prefix and a chance to improve it."
const moveInstructionsRetry = "Use your previous attempts above to further optimize your prefix. Provide your prefix inside of <move></move> tags. Any other text in your response will be ignored."

// attemptsFromHistory collects each elicit_response paired with the
// reward(s) that followed it, in order, grouped rewardsPerAttempt at a
// time (1 for single, 3 for multi, 2 for dex).
func attemptsFromHistory(history []config.EventJSON, rewardsPerAttempt int, labels []string) []string {
	var lines []string
	rewardCount := 0
	for _, event := range history {
		switch event.Type {
		case config.EventElicitResponse:
			lines = append(lines, "<attempt>", "You provided: "+event.Response)
		case config.EventReward:
			label := ""
			if rewardsPerAttempt > 1 && rewardCount < len(labels) {
				label = labels[rewardCount] + " "
			}
			score := 0.0
			if event.Value != nil {
				score = event.Value.TotalXent()
			}
			lines = append(lines, fmt.Sprintf("Total %sscore: %.2f", label, score))
			if event.Value != nil {
				lines = append(lines, fmt.Sprintf("Per token %sscore: %s", label, event.Value.String()))
			}
			rewardCount++
			if rewardCount == rewardsPerAttempt {
				lines = append(lines, "</attempt>")
				rewardCount = 0
			}
		}
	}
	return lines
}

func assemble(overview string, attempts []string) string {
	if len(attempts) == 0 {
		return overview + "\n" + moveInstructionsFirst
	}
	var b strings.Builder
	b.WriteString(overview)
	b.WriteString("\n<previousAttempts>\n")
	for _, line := range attempts {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("</previousAttempts>\n")
	b.WriteString(moveInstructionsRetry)
	return b.String()
}

// Single presents one story; the player supplies a prefix minimizing its
// cross-entropy (original_source/games/single_presentation.py).
func Single(state State, history []config.EventJSON, _ config.XentMetadata) string {
	story := state.text("s")
	overview := fmt.Sprintf(
		"I am going to give you a short text. Your job is to provide a string that will prefix that text, minimizing its cross-entropy.\n\nThe text is: %q\n\nYou may not use any words from the text in your response, regardless of case or punctuation. Maximum 10 tokens.",
		story)
	return assemble(overview, attemptsFromHistory(history, 1, nil))
}

// Multi presents three stories; one prefix must help predict all three
// (original_source/games/multi_presentation.py).
func Multi(state State, history []config.EventJSON, _ config.XentMetadata) string {
	s1, s2, s3 := state.text("s1"), state.text("s2"), state.text("s3")
	overview := fmt.Sprintf(
		"I am going to give you 3 short texts. Provide a single prefix that minimizes the sum of their cross-entropies.\n\nFirst text: %q\nSecond text: %q\nThird text: %q\n\nYou may not use any words from any of the texts. Maximum 10 tokens.",
		s1, s2, s3)
	return assemble(overview, attemptsFromHistory(history, 3, []string{"first", "second", "third"}))
}

// Dex presents two stories; the prefix should minimize the cross-entropy
// of the first while maximizing the second's (original_source/games/
// dex_presentation.py, "dex" = discriminate-and-extremize).
func Dex(state State, history []config.EventJSON, _ config.XentMetadata) string {
	s1, s2 := state.text("s1"), state.text("s2")
	overview := fmt.Sprintf(
		"I am going to give you two short texts. Provide a prefix that minimizes the cross-entropy of the first text and maximizes the cross-entropy of the second.\n\nFirst text: %q\nSecond text: %q\n\nYour string must not use any words from either text. Maximum 10 tokens.",
		s1, s2)
	return assemble(overview, attemptsFromHistory(history, 2, []string{"first", "second"}))
}

// Sequence presents an evolving chain of continuations, replaying any
// rejected attempts at each step (original_source/games/
// likely_sequence_unlikely_result_presentation.py).
func Sequence(state State, history []config.EventJSON, _ config.XentMetadata) string {
	story := state.text("s")
	var b strings.Builder
	if len(history) == 0 {
		b.WriteString("You are starting a new game.\n")
		fmt.Fprintf(&b, "The initial text is: %q\n", story)
	} else {
		b.WriteString("A history of your play so far:\n<fullHistory>\n")
		step := 0
		var stepFailures []string
		lastSuccess := story
		for i, event := range history {
			if event.Type != config.EventElicitResponse {
				continue
			}
			isFailure := i+1 < len(history) && history[i+1].Type == config.EventFailedEnsure
			if isFailure {
				stepFailures = append(stepFailures, event.Response)
				continue
			}
			step++
			fmt.Fprintf(&b, "  <step index=\"%d\">\n", step)
			fmt.Fprintf(&b, "    <prompt>Continuing from: %q</prompt>\n", lastSuccess)
			if len(stepFailures) > 0 {
				b.WriteString("    <failures>\n")
				for _, f := range stepFailures {
					fmt.Fprintf(&b, "      <attempt>%q</attempt>\n", f)
				}
				b.WriteString("    </failures>\n")
			}
			fmt.Fprintf(&b, "    <success>%q</success>\n", event.Response)
			b.WriteString("  </step>\n")
			lastSuccess = event.Response
			stepFailures = nil
		}
		if len(stepFailures) > 0 {
			fmt.Fprintf(&b, "  <currentStep>\n    <prompt>Continuing from: %q</prompt>\n    <failures>\n", lastSuccess)
			for _, f := range stepFailures {
				fmt.Fprintf(&b, "      <attempt>%q</attempt>\n", f)
			}
			b.WriteString("    </failures>\n  </currentStep>\n")
		}
		b.WriteString("</fullHistory>\n")
	}
	b.WriteString("\nNow provide your next move within <move></move> tags.")
	return b.String()
}
