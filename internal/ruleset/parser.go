// Package ruleset loads approved triage rule-set artifacts: it parses the
// YAML document into validated domain values, computes a SHA-256 content
// hash over the raw artifact bytes, and serves cached immutable rule sets
// by name.
package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// artifactDoc mirrors the rule-set artifact's YAML layout. The loosely-typed
// document is converted to closed domain types before anything else sees it.
type artifactDoc struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
	RuleSet struct {
		Evaluation struct {
			Mode    string     `yaml:"mode"`
			Default outcomeDoc `yaml:"default"`
		} `yaml:"evaluation"`
	} `yaml:"ruleset"`
	Rules []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	ID       string       `yaml:"id"`
	Priority int          `yaml:"priority"`
	When     conditionDoc `yaml:"when"`
	Then     outcomeDoc   `yaml:"then"`
}

type conditionDoc struct {
	All []conditionDoc `yaml:"all"`
	Any []conditionDoc `yaml:"any"`

	Fact  string `yaml:"fact"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
}

type outcomeDoc struct {
	Tier    string `yaml:"tier"`
	Pathway string `yaml:"pathway"`
	Booking struct {
		SelfBookAllowed bool `yaml:"self_book_allowed"`
	} `yaml:"booking"`
	Flags   []flagDoc `yaml:"flags"`
	Explain string    `yaml:"explain"`
}

type flagDoc struct {
	Type     string `yaml:"type"`
	Severity string `yaml:"severity"`
}

// Parse converts raw artifact bytes into a validated domain rule set.
// Any failure — unparseable YAML, unknown tier/pathway/operator, duplicate
// rule ids, malformed condition shapes — is reported as ErrMalformedRuleSet
// and the artifact is never partially served.
func Parse(data []byte) (*domain.RuleSet, error) {
	var doc artifactDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRuleSet, err)
	}

	rs := &domain.RuleSet{
		ID:      doc.ID,
		Version: doc.Version,
		Mode:    domain.EvaluationMode(doc.RuleSet.Evaluation.Mode),
		Rules:   make([]domain.Rule, 0, len(doc.Rules)),
	}

	defaultOutcome, err := convertOutcome(doc.RuleSet.Evaluation.Default)
	if err != nil {
		return nil, fmt.Errorf("%w: default outcome: %v", domain.ErrMalformedRuleSet, err)
	}
	rs.Default = defaultOutcome

	for _, rd := range doc.Rules {
		rule, err := convertRule(rd)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", domain.ErrMalformedRuleSet, rd.ID, err)
		}
		rs.Rules = append(rs.Rules, rule)
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRuleSet, err)
	}
	return rs, nil
}

func convertRule(doc ruleDoc) (domain.Rule, error) {
	cond, err := convertCondition(doc.When)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("condition: %w", err)
	}
	outcome, err := convertOutcome(doc.Then)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("outcome: %w", err)
	}
	return domain.Rule{
		ID:       doc.ID,
		Priority: doc.Priority,
		When:     cond,
		Then:     outcome,
	}, nil
}

// convertCondition maps a loose condition document onto the closed
// All/Any/Leaf union. A node must be exactly one of the three shapes.
func convertCondition(doc conditionDoc) (domain.Condition, error) {
	isAll := len(doc.All) > 0
	isAny := len(doc.Any) > 0
	isLeaf := doc.Fact != ""

	shapes := 0
	for _, set := range []bool{isAll, isAny, isLeaf} {
		if set {
			shapes++
		}
	}
	if shapes != 1 {
		return domain.Condition{}, fmt.Errorf("condition must be exactly one of all/any/leaf")
	}

	switch {
	case isAll:
		children, err := convertChildren(doc.All)
		if err != nil {
			return domain.Condition{}, err
		}
		return domain.All(children...), nil
	case isAny:
		children, err := convertChildren(doc.Any)
		if err != nil {
			return domain.Condition{}, err
		}
		return domain.Any(children...), nil
	default:
		op := domain.Operator(doc.Op)
		if !op.IsValid() {
			return domain.Condition{}, fmt.Errorf("%w: %q", domain.ErrInvalidOperator, doc.Op)
		}
		return domain.Leaf(doc.Fact, op, doc.Value), nil
	}
}

func convertChildren(docs []conditionDoc) ([]domain.Condition, error) {
	children := make([]domain.Condition, 0, len(docs))
	for i, child := range docs {
		converted, err := convertCondition(child)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, converted)
	}
	return children, nil
}

func convertOutcome(doc outcomeDoc) (domain.Outcome, error) {
	outcome := domain.Outcome{
		Tier:            domain.Tier(doc.Tier),
		Pathway:         domain.Pathway(doc.Pathway),
		SelfBookAllowed: doc.Booking.SelfBookAllowed,
		Explain:         doc.Explain,
	}
	for _, fd := range doc.Flags {
		outcome.Flags = append(outcome.Flags, domain.Flag{
			Type:     fd.Type,
			Severity: domain.FlagSeverity(fd.Severity),
		})
	}
	if err := outcome.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return outcome, nil
}
