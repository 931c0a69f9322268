package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// The wire payload is the serialized form of a RuleSet handed to native
// keyboard implementations (JSON) and loaded from field configuration files
// (TOML). Both share one intermediate document shape.

type payloadDoc struct {
	Fallback payloadAction `json:"fallback" toml:"fallback"`
	Rules    []payloadRule `json:"rules" toml:"rules"`
}

type payloadRule struct {
	Action     payloadAction      `json:"action" toml:"action"`
	Conditions []payloadCondition `json:"conditions" toml:"conditions"`
}

type payloadAction struct {
	Kind        string `json:"kind" toml:"kind"`
	Replacement string `json:"replacement,omitempty" toml:"replacement,omitempty"`
}

type payloadCondition struct {
	Subject  string `json:"subject" toml:"subject"`
	Operator string `json:"op" toml:"op"`
	A        int    `json:"a" toml:"a"`
	B        int    `json:"b,omitempty" toml:"b,omitempty"`
	Set      []int  `json:"set,omitempty" toml:"set,omitempty"`
}

var (
	subjectNames = map[Subject]string{
		SubjectChar:       "char",
		SubjectIndex:      "index",
		SubjectOccurrence: "occurrence",
	}
	operatorNames = map[Operator]string{
		OpEqual:          "eq",
		OpNotEqual:       "ne",
		OpLess:           "lt",
		OpLessEqual:      "le",
		OpGreater:        "gt",
		OpGreaterEqual:   "ge",
		OpRangeInclusive: "range",
		OpRangeExclusive: "range_excl",
		OpOneOf:          "one_of",
	}
	actionNames = map[ActionKind]string{
		Accept:  "accept",
		Reject:  "reject",
		Replace: "replace",
	}
)

func nameToSubject(s string) (Subject, error) {
	for k, v := range subjectNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown condition subject %q", s)
}

func nameToOperator(s string) (Operator, error) {
	for k, v := range operatorNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown condition operator %q", s)
}

func nameToAction(a payloadAction) (Action, error) {
	for k, v := range actionNames {
		if v == a.Kind {
			act := Action{Kind: k}
			if k == Replace {
				r := []rune(a.Replacement)
				if len(r) != 1 {
					return Action{}, fmt.Errorf("replace action needs exactly one replacement character, got %q", a.Replacement)
				}
				act.Replacement = r[0]
			}
			return act, nil
		}
	}
	return Action{}, fmt.Errorf("unknown action %q", a.Kind)
}

func (rs *RuleSet) toDoc() payloadDoc {
	doc := payloadDoc{Fallback: actionToPayload(rs.Fallback)}
	for _, r := range rs.Rules {
		pr := payloadRule{Action: actionToPayload(r.Action)}
		for _, c := range r.Conditions {
			pr.Conditions = append(pr.Conditions, payloadCondition{
				Subject:  subjectNames[c.Subject],
				Operator: operatorNames[c.Operator],
				A:        c.A,
				B:        c.B,
				Set:      c.Set,
			})
		}
		doc.Rules = append(doc.Rules, pr)
	}
	return doc
}

func actionToPayload(a Action) payloadAction {
	p := payloadAction{Kind: actionNames[a.Kind]}
	if a.Kind == Replace {
		p.Replacement = string(a.Replacement)
	}
	return p
}

func docToRuleSet(doc payloadDoc) (*RuleSet, error) {
	rs := &RuleSet{}
	if doc.Fallback.Kind == "" {
		rs.Fallback = Action{Kind: Accept}
	} else {
		fb, err := nameToAction(doc.Fallback)
		if err != nil {
			return nil, err
		}
		rs.Fallback = fb
	}
	for i, pr := range doc.Rules {
		act, err := nameToAction(pr.Action)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rule := Rule{Action: act}
		for j, pc := range pr.Conditions {
			sub, err := nameToSubject(pc.Subject)
			if err != nil {
				return nil, fmt.Errorf("rule %d condition %d: %w", i, j, err)
			}
			op, err := nameToOperator(pc.Operator)
			if err != nil {
				return nil, fmt.Errorf("rule %d condition %d: %w", i, j, err)
			}
			rule.Conditions = append(rule.Conditions, Condition{
				Subject:  sub,
				Operator: op,
				A:        pc.A,
				B:        pc.B,
				Set:      pc.Set,
			})
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs, nil
}

// MarshalJSON renders the rule set as the wire payload for native keyboards.
func (rs *RuleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.toDoc())
}

// UnmarshalJSON parses a wire payload.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	var doc payloadDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := docToRuleSet(doc)
	if err != nil {
		return err
	}
	*rs = *parsed
	return nil
}

// ParsePayload parses a JSON wire payload into a RuleSet.
func ParsePayload(data []byte) (*RuleSet, error) {
	rs := &RuleSet{}
	if err := rs.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return rs, nil
}

// ParseTOML parses a TOML rule document, as found in field configuration
// files.
func ParseTOML(data []byte) (*RuleSet, error) {
	var doc payloadDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return docToRuleSet(doc)
}

// LoadFile loads a rule set from a .toml or .json file, picking the codec by
// extension (TOML unless the name ends in .json).
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return ParsePayload(data)
	}
	return ParseTOML(data)
}
