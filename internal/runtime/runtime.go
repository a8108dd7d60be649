// Package runtime executes one parsed DSL program against one player for
// num_rounds_per_game rounds: register store, instruction dispatch, event
// emission, scoring, and halls (spec.md §4.D). Grounded on
// internal/game/engine.go's per-hand driving loop and internal/game/
// events.go's event-interface idiom from the teacher.
package runtime

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/dsl"
	"github.com/xentlabs/xent-sub001/internal/judge"
	"github.com/xentlabs/xent-sub001/internal/player"
	"github.com/xentlabs/xent-sub001/internal/presentation"
	"github.com/xentlabs/xent-sub001/internal/textgen"
	"github.com/xentlabs/xent-sub001/internal/xerr"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// Runtime drives one ExecutableGameMap against one player.
type Runtime struct {
	Program      *dsl.Program
	Judge        *judge.Judge
	Player       player.Player
	PlayerName   config.PlayerName
	Metadata     config.XentMetadata
	Presentation presentation.Function
	NewTextGen   func(roundIndex int) textgen.Generator
	Logger       zerolog.Logger
}

// RunUnit drives the program for Metadata.NumRoundsPerGame rounds,
// returning one GameMapRoundResult per round (spec.md §4.D, §4.H.5). The
// unit's overall score is left to the caller to aggregate (spec.md §9's
// configurable best/last/sum reducer).
func (rt *Runtime) RunUnit(ctx context.Context) ([]config.GameMapRoundResult, error) {
	rounds := make([]config.GameMapRoundResult, 0, rt.Metadata.NumRoundsPerGame)
	var best *float64

	for i := 0; i < rt.Metadata.NumRoundsPerGame; i++ {
		result, err := rt.runRound(ctx, i, best)
		if err != nil {
			return rounds, err
		}
		if best == nil || result.Score > *best {
			b := result.Score
			best = &b
		}
		rounds = append(rounds, result)
	}
	return rounds, nil
}

// roundRunner holds the mutable state of one round's execution.
type roundRunner struct {
	rt        *Runtime
	registers *xtypes.RegisterFile
	textgen   textgen.Generator
	judge     *judge.Judge
	history   []config.EventJSON
	score     float64
	usage     config.TokenUsage
	halted    bool
	haltMsg   string
	labels    map[string]int
}

func (rt *Runtime) runRound(ctx context.Context, index int, bestSoFar *float64) (config.GameMapRoundResult, error) {
	r := &roundRunner{
		rt:        rt,
		registers: xtypes.NewRegisterFile(),
		textgen:   rt.NewTextGen(index),
		judge:     rt.Judge,
		labels:    labelIndex(rt.Program),
	}

	r.emit(config.EventJSON{Type: config.EventRoundStarted, RoundIndex: index})

	pc := 0
	for pc < len(rt.Program.Instructions) && !r.halted {
		if err := ctx.Err(); err != nil {
			return config.GameMapRoundResult{}, err
		}
		instr := rt.Program.Instructions[pc]
		next, err := r.exec(ctx, instr, pc)
		if err != nil {
			return config.GameMapRoundResult{}, err
		}
		pc = next
	}

	best := bestSoFar
	if best == nil || r.score > *best {
		b := r.score
		best = &b
	}
	r.emit(config.EventJSON{Type: config.EventRoundFinished, RoundIndex: index, BestScore: best})

	return config.GameMapRoundResult{
		Score:      r.score,
		TokenUsage: r.usage,
		History:    r.history,
	}, nil
}

func labelIndex(p *dsl.Program) map[string]int {
	out := make(map[string]int, len(p.Labels))
	for i, instr := range p.Instructions {
		if l, ok := instr.(*dsl.Label); ok {
			out[l.Name] = i
		}
	}
	return out
}

// exec runs one instruction and returns the next program counter.
func (r *roundRunner) exec(ctx context.Context, instr dsl.Instruction, pc int) (int, error) {
	switch in := instr.(type) {
	case *dsl.Label:
		return pc + 1, nil

	case *dsl.Assign:
		v, err := r.eval(in.Expr)
		if err != nil {
			return 0, err
		}
		regVal, err := v.toRegisterValue(in.L)
		if err != nil {
			return 0, err
		}
		if err := r.registers.Set(in.Register, regVal); err != nil {
			return 0, xerr.WithLine(err, in.L)
		}
		return pc + 1, nil

	case *dsl.Reveal:
		values := make(map[string]xtypes.XString, len(in.Registers))
		for _, name := range in.Registers {
			v, ok := r.registers.Get(name)
			if !ok {
				return 0, xerr.WithLine(fmt.Errorf("reveal of unassigned register %q: %w", name, xerr.ErrGame), in.L)
			}
			values[name] = v.ToXString()
		}
		r.emit(config.EventJSON{Type: config.EventReveal, Line: in.L, Player: string(r.rt.PlayerName), Values: values})
		return pc + 1, nil

	case *dsl.Elicit:
		if err := r.execElicit(ctx, in); err != nil {
			return 0, err
		}
		return pc + 1, nil

	case *dsl.Reward:
		if err := r.execReward(in); err != nil {
			return 0, err
		}
		return pc + 1, nil

	case *dsl.Ensure:
		return r.execEnsure(in, pc)

	default:
		return 0, xerr.WithLine(fmt.Errorf("unhandled instruction node %T: %w", instr, xerr.ErrInternal), instr.Line())
	}
}

func (r *roundRunner) execElicit(ctx context.Context, in *dsl.Elicit) error {
	snapshot := r.registers.PublicSnapshot()
	r.emit(config.EventJSON{
		Type: config.EventElicitRequest, Line: in.L, Player: string(r.rt.PlayerName),
		VarName: in.Register, MaxLen: in.MaxTokens, Registers: snapshotToXStrings(snapshot),
	})

	prompt := ""
	if r.rt.Presentation != nil {
		// The full snapshot (not PublicSnapshot) so story registers s/s1/s2/s3
		// are visible to the eliciting player's own prompt; PublicSnapshot
		// above only governs what the event log/opponent sees.
		prompt = r.rt.Presentation(presentation.State(r.registers.Snapshot()), r.history, r.rt.Metadata)
	}

	result, err := r.rt.Player.MakeMove(ctx, player.MoveRequest{
		Line: in.L, VarName: in.Register, MaxTokens: in.MaxTokens,
		Registers: snapshot, Presentation: prompt,
	})
	if err != nil {
		return xerr.WithLine(err, in.L)
	}
	r.usage = r.usage.Add(result.TokenUsage)

	r.emit(config.EventJSON{
		Type: config.EventElicitResponse, Line: in.L, Player: string(r.rt.PlayerName),
		Response: result.Response, TokenUsage: result.TokenUsage,
	})

	if result.Response == player.HaltSentinel {
		r.halted = true
		r.haltMsg = result.FullResponse
		r.emit(config.EventJSON{Type: config.EventHalt, Line: in.L, Player: string(r.rt.PlayerName), Message: r.haltMsg})
		return nil
	}

	response := stripMoveEnvelope(result.Response)
	return r.registers.Set(in.Register, xtypes.StringValue(xtypes.NewXString(response)))
}

func (r *roundRunner) execReward(in *dsl.Reward) error {
	v, err := r.eval(in.Expr)
	if err != nil {
		return err
	}
	txl, err := v.toTokenXentList(in.L)
	if err != nil {
		return err
	}
	r.emit(config.EventJSON{Type: config.EventReward, Line: in.L, Player: string(r.rt.PlayerName), Value: &txl})

	if !config.IsNoReward(r.rt.PlayerName) {
		r.score += txl.TotalXent()
	}
	return nil
}

func (r *roundRunner) execEnsure(in *dsl.Ensure, pc int) (int, error) {
	results := make([]bool, len(in.Conditions))
	allTrue := true
	for i, cond := range in.Conditions {
		ok, err := r.evalCondition(cond)
		if err != nil {
			return 0, err
		}
		results[i] = ok
		if !ok {
			allTrue = false
		}
	}
	if allTrue {
		return pc + 1, nil
	}
	r.emit(config.EventJSON{Type: config.EventFailedEnsure, Line: in.L, Player: string(r.rt.PlayerName), EnsureResults: results, Beacon: in.Beacon})
	target, ok := r.labels[in.Beacon]
	if !ok {
		return 0, xerr.WithLine(fmt.Errorf("ensure beacon %q not found: %w", in.Beacon, xerr.ErrGame), in.L)
	}
	return target, nil
}

func (r *roundRunner) evalCondition(cond dsl.Condition) (bool, error) {
	v, err := r.eval(cond.Arg)
	if err != nil {
		return false, err
	}
	n := float64(v.length())
	switch cond.Op {
	case "<":
		return n < cond.Value, nil
	case "<=":
		return n <= cond.Value, nil
	case ">":
		return n > cond.Value, nil
	case ">=":
		return n >= cond.Value, nil
	case "==":
		return n == cond.Value, nil
	case "!=":
		return n != cond.Value, nil
	default:
		return false, xerr.WithLine(fmt.Errorf("unknown comparison operator %q: %w", cond.Op, xerr.ErrInternal), cond.L)
	}
}

func (r *roundRunner) emit(event config.EventJSON) {
	r.history = append(r.history, event)
	if r.rt.Player != nil {
		_ = r.rt.Player.Post(context.Background(), event)
	}
}

func snapshotToXStrings(snapshot map[string]xtypes.Value) map[string]xtypes.XString {
	out := make(map[string]xtypes.XString, len(snapshot))
	for k, v := range snapshot {
		out[k] = v.ToXString()
	}
	return out
}

// stripMoveEnvelope removes a wrapping <move>...</move> tag if present
// (spec.md §4.E); models ignore this wrapper freely, so it tolerates
// surrounding whitespace and is a no-op when absent.
func stripMoveEnvelope(s string) string {
	const open, close = "<move>", "</move>"
	start := indexOf(s, open)
	if start < 0 {
		return s
	}
	end := indexOf(s, close)
	if end < 0 || end < start {
		return s
	}
	return s[start+len(open) : end]
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
