// Package dsl implements the parser and AST for the xentbench game
// language (spec.md §4.C). Each program is a line-indexed instruction
// sequence; expressions are a small tagged union matched by the runtime
// (spec.md §9: "dynamic dispatch of instructions" needs no inheritance
// chain, just a tag).
package dsl

// Instruction is one parsed line of a game program.
type Instruction interface {
	Line() int
	isInstruction()
}

// Assign binds the value of Expr to Register (spec.md §4.C `assign`).
type Assign struct {
	L        int
	Register string
	Expr     Expr
}

func (a *Assign) Line() int      { return a.L }
func (a *Assign) isInstruction() {}

// Reveal emits a reveal event for the named registers.
type Reveal struct {
	L         int
	Registers []string
}

func (r *Reveal) Line() int      { return r.L }
func (r *Reveal) isInstruction() {}

// Elicit awaits a player response and binds it to Register.
type Elicit struct {
	L         int
	Register  string
	MaxTokens int
}

func (e *Elicit) Line() int      { return e.L }
func (e *Elicit) isInstruction() {}

// Reward evaluates Expr to a TokenXentList and scores it.
type Reward struct {
	L    int
	Expr Expr
}

func (r *Reward) Line() int      { return r.L }
func (r *Reward) isInstruction() {}

// Ensure evaluates each Condition; if any is false, jumps to Beacon.
type Ensure struct {
	L          int
	Conditions []Condition
	Beacon     string
}

func (e *Ensure) Line() int      { return e.L }
func (e *Ensure) isInstruction() {}

// Label declares a named jump target; a no-op when executed.
type Label struct {
	L    int
	Name string
}

func (l *Label) Line() int      { return l.L }
func (l *Label) isInstruction() {}

// Condition is a single boolean clause inside an `ensure`. The DSL's only
// condition shape is a length comparison against a numeric literal, e.g.
// `len(x) > 0` (spec.md §8 scenario 4).
type Condition struct {
	L     int
	Arg   Expr
	Op    string // one of "<", "<=", ">", ">=", "==", "!="
	Value float64
}

// Expr is the tagged union of expression forms spec.md §4.C allows:
// string literals, register references, concatenation, story(),
// remove_common_words, xed, and arithmetic on TokenXentLists.
type Expr interface {
	Line() int
	isExpr()
}

// StringLit is a literal string, e.g. "hello".
type StringLit struct {
	L     int
	Value string
}

func (s *StringLit) Line() int { return s.L }
func (s *StringLit) isExpr()   {}

// RegisterRef reads a previously-assigned register.
type RegisterRef struct {
	L    int
	Name string
}

func (r *RegisterRef) Line() int { return r.L }
func (r *RegisterRef) isExpr()   {}

// Concat is string/TokenXentList concatenation via `+` or juxtaposition.
type Concat struct {
	L           int
	Left, Right Expr
}

func (c *Concat) Line() int { return c.L }
func (c *Concat) isExpr()   {}

// StoryCall is the `story()` built-in: draw one text from the configured
// text generator.
type StoryCall struct {
	L int
}

func (s *StoryCall) Line() int { return s.L }
func (s *StoryCall) isExpr()   {}

// RemoveCommonWords is `remove_common_words(x, y)`: return x with tokens
// whose lowercased surface appears in y removed.
type RemoveCommonWords struct {
	L    int
	X, Y Expr
}

func (r *RemoveCommonWords) Line() int { return r.L }
func (r *RemoveCommonWords) isExpr()   {}

// Xed is `xed(ctx | target)`: shorthand for the judge's cross-entropy of
// target given ctx, returning a TokenXentList.
type Xed struct {
	L               int
	Context, Target Expr
}

func (x *Xed) Line() int { return x.L }
func (x *Xed) isExpr()   {}
