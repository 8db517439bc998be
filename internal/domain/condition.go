package domain

import (
	"errors"
	"fmt"
)

// ConditionKind tags the variant of a Condition node.
type ConditionKind string

const (
	CondAll  ConditionKind = "all"
	CondAny  ConditionKind = "any"
	CondLeaf ConditionKind = "leaf"
)

// Condition is a boolean condition tree evaluated against a FactMap.
// It is a closed tagged union: All (conjunction), Any (disjunction), or a
// Leaf comparison of a dot-separated fact path against an expected value.
//
// Loosely-typed condition documents from rule-set artifacts are converted
// into this representation at load time so every consumer can switch
// exhaustively on Kind.
type Condition struct {
	Kind     ConditionKind
	Children []Condition // populated for All and Any

	// Leaf fields
	Fact  string
	Op    Operator
	Value any
}

// All builds a conjunction node. An empty All is vacuously true.
func All(children ...Condition) Condition {
	return Condition{Kind: CondAll, Children: children}
}

// Any builds a disjunction node. An empty Any is false.
func Any(children ...Condition) Condition {
	return Condition{Kind: CondAny, Children: children}
}

// Leaf builds a comparison node against a dot-separated fact path.
func Leaf(fact string, op Operator, value any) Condition {
	return Condition{Kind: CondLeaf, Fact: fact, Op: op, Value: value}
}

// Validate checks the condition tree is well formed: every node has a known
// kind, every leaf names a fact and carries a supported operator. Malformed
// trees are rejected here, at load time, so evaluation is total.
func (c Condition) Validate() error {
	switch c.Kind {
	case CondAll, CondAny:
		for i, child := range c.Children {
			if err := child.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", c.Kind, i, err)
			}
		}
		return nil
	case CondLeaf:
		if c.Fact == "" {
			return errors.New("leaf condition requires a fact path")
		}
		if !c.Op.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidOperator, string(c.Op))
		}
		return nil
	default:
		return fmt.Errorf("unknown condition kind %q", string(c.Kind))
	}
}
