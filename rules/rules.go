// Package rules implements the character validation engine for input fields:
// built-in per-character presets plus an ordered condition/action rule table
// for custom validation. Rule sets are plain data; they serialize to JSON for
// the native keyboard payload and load from TOML configuration files.
package rules

// ActionKind is what happens to a candidate character once a rule matches.
type ActionKind int

const (
	// Accept passes the character through unchanged.
	Accept ActionKind = iota
	// Reject drops the character; the caret does not advance.
	Reject
	// Replace substitutes a configured character; the caret advances by one.
	Replace
)

// Action pairs an ActionKind with the replacement rune for Replace.
type Action struct {
	Kind        ActionKind
	Replacement rune
}

// Subject selects which value a condition tests.
type Subject int

const (
	// SubjectChar tests the candidate character's code value.
	SubjectChar Subject = iota
	// SubjectIndex tests the character's index within the inserted chunk.
	SubjectIndex
	// SubjectOccurrence tests how many times the character already occurs in
	// the text being built.
	SubjectOccurrence
)

// Operator compares the subject value against the condition operands.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	// OpRangeInclusive matches A <= value <= B.
	OpRangeInclusive
	// OpRangeExclusive matches A < value < B.
	OpRangeExclusive
	// OpOneOf matches when the value is any element of Set.
	OpOneOf
)

// Condition is one predicate over a candidate character. All conditions of a
// rule must hold for the rule to match.
type Condition struct {
	Subject  Subject
	Operator Operator
	A        int
	B        int   // second operand, for the range operators
	Set      []int // operand set, for OpOneOf
}

// Matches evaluates the condition for a candidate character.
func (c Condition) Matches(char rune, index, occurrences int) bool {
	var v int
	switch c.Subject {
	case SubjectIndex:
		v = index
	case SubjectOccurrence:
		v = occurrences
	default:
		v = int(char)
	}
	switch c.Operator {
	case OpEqual:
		return v == c.A
	case OpNotEqual:
		return v != c.A
	case OpLess:
		return v < c.A
	case OpLessEqual:
		return v <= c.A
	case OpGreater:
		return v > c.A
	case OpGreaterEqual:
		return v >= c.A
	case OpRangeInclusive:
		return v >= c.A && v <= c.B
	case OpRangeExclusive:
		return v > c.A && v < c.B
	case OpOneOf:
		for _, s := range c.Set {
			if v == s {
				return true
			}
		}
		return false
	}
	return false
}

// Rule is an ordered list of ANDed conditions and one action.
type Rule struct {
	Conditions []Condition
	Action     Action
}

// Matches reports whether every condition of the rule holds.
func (r Rule) Matches(char rune, index, occurrences int) bool {
	for _, c := range r.Conditions {
		if !c.Matches(char, index, occurrences) {
			return false
		}
	}
	return true
}

// RuleSet is an ordered rule table with a fallback action for characters no
// rule matches. Rules are evaluated top to bottom; the first match wins.
type RuleSet struct {
	Rules    []Rule
	Fallback Action
}

// Apply returns the action for one candidate character.
func (rs *RuleSet) Apply(char rune, index, occurrences int) Action {
	for _, r := range rs.Rules {
		if r.Matches(char, index, occurrences) {
			return r.Action
		}
	}
	return rs.Fallback
}

// AcceptAll is the permissive rule set malformed payloads degrade to.
func AcceptAll() *RuleSet {
	return &RuleSet{Fallback: Action{Kind: Accept}}
}
