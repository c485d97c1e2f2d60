package logic

import (
	"fmt"

	"github.com/udisondev/rptrunk/internal/model"
)

// Subject selects which entity a conditional leaf inspects.
type Subject string

const (
	SubjectSelf   Subject = "self"
	SubjectTarget Subject = "target"
)

// Conditional is a boolean gate evaluated against an entity and the world.
// Exactly one form is used per node, checked in this order:
//
//	always: true|false          constant
//	all: [...]                  every child holds
//	any: [...]                  at least one child holds
//	not: {...}                  child does not hold
//	subject + status            subject has the named status effect
//	subject + stat + op + value stat comparison via Operator
//
// The zero Conditional holds.
type Conditional struct {
	Always *bool `yaml:"always,omitempty" json:"always,omitempty"`

	All []Conditional `yaml:"all,omitempty" json:"all,omitempty"`
	Any []Conditional `yaml:"any,omitempty" json:"any,omitempty"`
	Not *Conditional  `yaml:"not,omitempty" json:"not,omitempty"`

	Subject Subject  `yaml:"subject,omitempty" json:"subject,omitempty"`
	Status  string   `yaml:"status,omitempty" json:"status,omitempty"`
	Stat    string   `yaml:"stat,omitempty" json:"stat,omitempty"`
	Op      Operator `yaml:"op,omitempty" json:"op,omitempty"`
	Value   int32    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Always returns a constant conditional.
func Always(v bool) Conditional {
	return Conditional{Always: &v}
}

// Compare returns a stat comparison leaf: subject.stat op value.
func Compare(subject Subject, stat string, op Operator, value int32) Conditional {
	return Conditional{Subject: subject, Stat: stat, Op: op, Value: value}
}

// HasStatus returns a leaf that holds while subject carries the named effect.
func HasStatus(subject Subject, name string) Conditional {
	return Conditional{Subject: subject, Status: name}
}

// AllOf holds when every child holds.
func AllOf(cs ...Conditional) Conditional {
	return Conditional{All: cs}
}

// AnyOf holds when at least one child holds.
func AnyOf(cs ...Conditional) Conditional {
	return Conditional{Any: cs}
}

// Not negates c.
func Not(c Conditional) Conditional {
	return Conditional{Not: &c}
}

// Exec evaluates the conditional for entity e. Evaluation errors are
// returned to the caller; the Item gate treats them as a closed gate.
func (c Conditional) Exec(e *model.Entity, space model.Space) (bool, error) {
	switch {
	case c.Always != nil:
		return *c.Always, nil

	case len(c.All) > 0:
		for i, child := range c.All {
			ok, err := child.Exec(e, space)
			if err != nil {
				return false, fmt.Errorf("all[%d]: %w", i, err)
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case len(c.Any) > 0:
		for i, child := range c.Any {
			ok, err := child.Exec(e, space)
			if err != nil {
				return false, fmt.Errorf("any[%d]: %w", i, err)
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case c.Not != nil:
		ok, err := c.Not.Exec(e, space)
		if err != nil {
			return false, fmt.Errorf("not: %w", err)
		}
		return !ok, nil

	case c.Status != "":
		subject, err := c.resolveSubject(e, space)
		if err != nil {
			return false, err
		}
		return subject.HasStatusEffect(c.Status), nil

	case c.Stat != "":
		if err := c.checkOp(); err != nil {
			return false, err
		}
		subject, err := c.resolveSubject(e, space)
		if err != nil {
			return false, err
		}
		stats := subject.CurrentStats()
		if !stats.Has(c.Stat) {
			return false, fmt.Errorf("%w: %q on %s", ErrUnknownStat, c.Stat, subject.Name())
		}
		return Evaluate(c.Op, stats.Get(c.Stat), c.Value), nil

	default:
		return true, nil
	}
}

// resolveSubject picks the entity a leaf inspects.
func (c Conditional) resolveSubject(e *model.Entity, space model.Space) (*model.Entity, error) {
	switch c.Subject {
	case "", SubjectSelf:
		return e, nil
	case SubjectTarget:
		id, ok := e.Target()
		if !ok {
			return nil, fmt.Errorf("%w: %s has no assigned target", ErrNoTarget, e.Name())
		}
		if space == nil {
			return nil, fmt.Errorf("%w: no space to resolve %d", ErrNoTarget, id)
		}
		target, ok := space.EntityByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: entity %d not found", ErrNoTarget, id)
		}
		return target, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, c.Subject)
	}
}

// Validate checks operator and subject spelling without evaluating.
func (c Conditional) Validate() error {
	for i, child := range c.All {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("all[%d]: %w", i, err)
		}
	}
	for i, child := range c.Any {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("any[%d]: %w", i, err)
		}
	}
	if c.Not != nil {
		if err := c.Not.Validate(); err != nil {
			return fmt.Errorf("not: %w", err)
		}
	}
	switch c.Subject {
	case "", SubjectSelf, SubjectTarget:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSubject, c.Subject)
	}
	if c.Stat != "" {
		return c.checkOp()
	}
	return nil
}

// checkOp rejects stat leaves whose op is missing or out of range.
func (c Conditional) checkOp() error {
	if c.Op == 0 {
		return fmt.Errorf("%w: stat %q has no op", ErrUnknownOperator, c.Stat)
	}
	if !c.Op.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownOperator, int8(c.Op))
	}
	return nil
}

// String renders the conditional in a compact infix form for logs.
func (c Conditional) String() string {
	subject := c.Subject
	if subject == "" {
		subject = SubjectSelf
	}
	switch {
	case c.Always != nil:
		return fmt.Sprintf("%t", *c.Always)
	case len(c.All) > 0:
		return joinConditionals(c.All, " && ")
	case len(c.Any) > 0:
		return joinConditionals(c.Any, " || ")
	case c.Not != nil:
		return "!" + c.Not.String()
	case c.Status != "":
		return fmt.Sprintf("%s has %s", subject, c.Status)
	case c.Stat != "":
		return fmt.Sprintf("%s.%s %s %d", subject, c.Stat, c.Op.Symbol(), c.Value)
	default:
		return "true"
	}
}

func joinConditionals(cs []Conditional, sep string) string {
	s := "("
	for i, c := range cs {
		if i > 0 {
			s += sep
		}
		s += c.String()
	}
	return s + ")"
}
