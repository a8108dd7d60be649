package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xentlabs/xent-sub001/internal/xerr"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// Program is a parsed game: a line-indexed instruction sequence plus the
// labels (beacons) it declares (spec.md §4.C).
type Program struct {
	Instructions []Instruction
	Labels       map[string]xtypes.XFlag
}

// Parse parses source into a Program, or returns a syntax-kind error
// carrying the offending line number (spec.md §4.C, §7).
func Parse(source string) (*Program, error) {
	p := &parser{
		labels:   map[string]xtypes.XFlag{},
		assigned: map[string]bool{},
	}
	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		lineNum := i + 1
		text := stripComment(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		instr, err := p.parseLine(lineNum, text)
		if err != nil {
			return nil, err
		}
		if instr != nil {
			p.instructions = append(p.instructions, instr)
		}
	}
	// Validate every ensure beacon resolves to a declared label.
	for _, instr := range p.instructions {
		ens, ok := instr.(*Ensure)
		if !ok {
			continue
		}
		if _, ok := p.labels[ens.Beacon]; !ok {
			return nil, xerr.WithLine(fmt.Errorf("ensure beacon %q has no matching label: %w", ens.Beacon, xerr.ErrSyntax), ens.L)
		}
	}
	return &Program{Instructions: p.instructions, Labels: p.labels}, nil
}

type parser struct {
	instructions []Instruction
	labels       map[string]xtypes.XFlag
	assigned     map[string]bool
}

var labelRe = regexpMustCompileLabel()

func (p *parser) parseLine(lineNum int, text string) (Instruction, error) {
	if m := labelRe.FindStringSubmatch(text); m != nil {
		name := m[1]
		if _, ok := p.labels[name]; ok {
			return nil, xerr.WithLine(fmt.Errorf("duplicate label %q: %w", name, xerr.ErrSyntax), lineNum)
		}
		p.labels[name] = xtypes.NewXFlag(name, lineNum)
		return &Label{L: lineNum, Name: name}, nil
	}

	name, inner, err := splitCall(text, lineNum)
	if err != nil {
		return nil, err
	}

	switch name {
	case "assign":
		return p.parseAssign(lineNum, inner)
	case "reveal":
		return p.parseReveal(lineNum, inner)
	case "elicit":
		return p.parseElicit(lineNum, inner)
	case "reward":
		return p.parseReward(lineNum, inner)
	case "ensure":
		return p.parseEnsure(lineNum, inner)
	default:
		return nil, xerr.WithLine(fmt.Errorf("unknown instruction %q: %w", name, xerr.ErrSyntax), lineNum)
	}
}

func (p *parser) parseAssign(lineNum int, inner string) (Instruction, error) {
	idx := topLevelIndex(inner, '=')
	if idx < 0 {
		return nil, xerr.WithLine(fmt.Errorf("assign missing '=': %w", xerr.ErrSyntax), lineNum)
	}
	register := strings.TrimSpace(inner[:idx])
	exprText := strings.TrimSpace(inner[idx+1:])
	if !xtypes.IsValidRegister(register) {
		return nil, xerr.WithLine(fmt.Errorf("write to unknown register %q: %w", register, xerr.ErrSyntax), lineNum)
	}
	expr, err := p.parseExpr(lineNum, exprText)
	if err != nil {
		return nil, err
	}
	p.assigned[register] = true
	return &Assign{L: lineNum, Register: register, Expr: expr}, nil
}

func (p *parser) parseReveal(lineNum int, inner string) (Instruction, error) {
	parts := splitTopLevel(inner, ',')
	if len(parts) == 0 || (len(parts) == 1 && strings.TrimSpace(parts[0]) == "") {
		return nil, xerr.WithLine(fmt.Errorf("reveal requires at least one register: %w", xerr.ErrSyntax), lineNum)
	}
	regs := make([]string, len(parts))
	for i, part := range parts {
		reg := strings.TrimSpace(part)
		if !xtypes.IsValidRegister(reg) {
			return nil, xerr.WithLine(fmt.Errorf("reveal of unknown register %q: %w", reg, xerr.ErrSyntax), lineNum)
		}
		if !p.assigned[reg] {
			return nil, xerr.WithLine(fmt.Errorf("use of register %q before assignment: %w", reg, xerr.ErrSyntax), lineNum)
		}
		regs[i] = reg
	}
	return &Reveal{L: lineNum, Registers: regs}, nil
}

func (p *parser) parseElicit(lineNum int, inner string) (Instruction, error) {
	parts := splitTopLevel(inner, ',')
	if len(parts) != 2 {
		return nil, xerr.WithLine(fmt.Errorf("elicit requires (register, max_tokens): %w", xerr.ErrSyntax), lineNum)
	}
	register := strings.TrimSpace(parts[0])
	if !xtypes.IsValidRegister(register) {
		return nil, xerr.WithLine(fmt.Errorf("elicit into unknown register %q: %w", register, xerr.ErrSyntax), lineNum)
	}
	maxTokens, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, xerr.WithLine(fmt.Errorf("elicit max_tokens must be an integer: %w", xerr.ErrSyntax), lineNum)
	}
	if maxTokens <= 0 {
		return nil, xerr.WithLine(fmt.Errorf("elicit max_tokens must be > 0: %w", xerr.ErrSyntax), lineNum)
	}
	p.assigned[register] = true
	return &Elicit{L: lineNum, Register: register, MaxTokens: maxTokens}, nil
}

func (p *parser) parseReward(lineNum int, inner string) (Instruction, error) {
	expr, err := p.parseExpr(lineNum, inner)
	if err != nil {
		return nil, err
	}
	return &Reward{L: lineNum, Expr: expr}, nil
}

func (p *parser) parseEnsure(lineNum int, inner string) (Instruction, error) {
	parts := splitTopLevel(inner, ',')
	if len(parts) < 2 {
		return nil, xerr.WithLine(fmt.Errorf("ensure requires at least one condition and beacon=: %w", xerr.ErrSyntax), lineNum)
	}
	beaconPart := strings.TrimSpace(parts[len(parts)-1])
	const beaconPrefix = "beacon="
	if !strings.HasPrefix(beaconPart, beaconPrefix) {
		return nil, xerr.WithLine(fmt.Errorf("ensure must end with beacon=<label>: %w", xerr.ErrSyntax), lineNum)
	}
	beacon := strings.TrimSpace(strings.TrimPrefix(beaconPart, beaconPrefix))
	if beacon == "" {
		return nil, xerr.WithLine(fmt.Errorf("ensure beacon name is empty: %w", xerr.ErrSyntax), lineNum)
	}

	conditions := make([]Condition, 0, len(parts)-1)
	for _, raw := range parts[:len(parts)-1] {
		cond, err := p.parseCondition(lineNum, strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}
	return &Ensure{L: lineNum, Conditions: conditions, Beacon: beacon}, nil
}

var comparisonOps = []string{"<=", ">=", "==", "!=", "<", ">"}

func (p *parser) parseCondition(lineNum int, text string) (Condition, error) {
	for _, op := range comparisonOps {
		idx := topLevelIndexOfString(text, op)
		if idx < 0 {
			continue
		}
		argText := strings.TrimSpace(text[:idx])
		valText := strings.TrimSpace(text[idx+len(op):])
		value, err := strconv.ParseFloat(valText, 64)
		if err != nil {
			return Condition{}, xerr.WithLine(fmt.Errorf("ensure condition value %q is not numeric: %w", valText, xerr.ErrSyntax), lineNum)
		}
		innerText, err := unwrapLen(argText)
		if err != nil {
			return Condition{}, xerr.WithLine(fmt.Errorf("ensure condition %q: %w", argText, err), lineNum)
		}
		arg, err := p.parseExpr(lineNum, innerText)
		if err != nil {
			return Condition{}, err
		}
		return Condition{L: lineNum, Arg: arg, Op: op, Value: value}, nil
	}
	return Condition{}, xerr.WithLine(fmt.Errorf("ensure condition %q has no recognized comparison operator: %w", text, xerr.ErrSyntax), lineNum)
}

// unwrapLen strips the `len(...)` wrapper every ensure condition argument
// must carry (spec.md §8 scenario 4, ast.go's Condition doc), returning the
// expression text inside.
func unwrapLen(text string) (string, error) {
	const prefix = "len("
	if !strings.HasPrefix(text, prefix) || !strings.HasSuffix(text, ")") {
		return "", fmt.Errorf("expected len(...), got %q: %w", text, xerr.ErrSyntax)
	}
	return strings.TrimSpace(text[len(prefix) : len(text)-1]), nil
}

// parseExpr parses the concatenation grammar: terms joined by `+` or by
// juxtaposition (separated only by spaces), e.g. `s + x` or `s x`.
func (p *parser) parseExpr(lineNum int, text string) (Expr, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, xerr.WithLine(fmt.Errorf("empty expression: %w", xerr.ErrSyntax), lineNum)
	}
	var terms []string
	for _, part := range splitTopLevel(text, '+') {
		before := len(terms)
		for _, word := range splitTopLevel(strings.TrimSpace(part), ' ') {
			if word = strings.TrimSpace(word); word != "" {
				terms = append(terms, word)
			}
		}
		if len(terms) == before {
			terms = append(terms, "") // rejected by parseTerm as an empty term
		}
	}
	var result Expr
	for _, termText := range terms {
		term, err := p.parseTerm(lineNum, termText)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = term
		} else {
			result = &Concat{L: lineNum, Left: result, Right: term}
		}
	}
	return result, nil
}

func (p *parser) parseTerm(lineNum int, text string) (Expr, error) {
	if text == "" {
		return nil, xerr.WithLine(fmt.Errorf("empty term in expression: %w", xerr.ErrSyntax), lineNum)
	}
	if strings.HasPrefix(text, `"`) {
		if !strings.HasSuffix(text, `"`) || len(text) < 2 {
			return nil, xerr.WithLine(fmt.Errorf("unterminated string literal %q: %w", text, xerr.ErrSyntax), lineNum)
		}
		return &StringLit{L: lineNum, Value: text[1 : len(text)-1]}, nil
	}
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		if !strings.HasSuffix(text, ")") {
			return nil, xerr.WithLine(fmt.Errorf("unterminated call %q: %w", text, xerr.ErrSyntax), lineNum)
		}
		fn := text[:idx]
		args := text[idx+1 : len(text)-1]
		return p.parseCall(lineNum, fn, args)
	}
	// Bare register reference.
	if !xtypes.IsValidRegister(text) {
		return nil, xerr.WithLine(fmt.Errorf("unknown identifier %q: %w", text, xerr.ErrSyntax), lineNum)
	}
	if !p.assigned[text] {
		return nil, xerr.WithLine(fmt.Errorf("use of register %q before assignment: %w", text, xerr.ErrSyntax), lineNum)
	}
	return &RegisterRef{L: lineNum, Name: text}, nil
}

func (p *parser) parseCall(lineNum int, fn, args string) (Expr, error) {
	switch fn {
	case "story":
		if strings.TrimSpace(args) != "" {
			return nil, xerr.WithLine(fmt.Errorf("story() takes no arguments: %w", xerr.ErrSyntax), lineNum)
		}
		return &StoryCall{L: lineNum}, nil
	case "remove_common_words":
		parts := splitTopLevel(args, ',')
		if len(parts) != 2 {
			return nil, xerr.WithLine(fmt.Errorf("remove_common_words takes exactly 2 arguments: %w", xerr.ErrSyntax), lineNum)
		}
		x, err := p.parseExpr(lineNum, parts[0])
		if err != nil {
			return nil, err
		}
		y, err := p.parseExpr(lineNum, parts[1])
		if err != nil {
			return nil, err
		}
		return &RemoveCommonWords{L: lineNum, X: x, Y: y}, nil
	case "xed":
		idx := topLevelIndex(args, '|')
		if idx < 0 {
			return nil, xerr.WithLine(fmt.Errorf("xed requires ctx | target: %w", xerr.ErrSyntax), lineNum)
		}
		ctx, err := p.parseExpr(lineNum, args[:idx])
		if err != nil {
			return nil, err
		}
		target, err := p.parseExpr(lineNum, args[idx+1:])
		if err != nil {
			return nil, err
		}
		return &Xed{L: lineNum, Context: ctx, Target: target}, nil
	default:
		return nil, xerr.WithLine(fmt.Errorf("unknown operator %q: %w", fn, xerr.ErrSyntax), lineNum)
	}
}
