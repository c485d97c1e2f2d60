package logic

import (
	"cmp"
	"fmt"
)

// Operator is a binary comparison used by conditionals.
// The zero value is not a valid operator: a stat leaf without op is rejected.
type Operator int8

const (
	GreaterThan Operator = iota + 1 // >
	LessThan                        // <
	Equal                           // ==
	NotEqual                        // !=
)

// Operators lists every comparison in declaration order.
var Operators = []Operator{GreaterThan, LessThan, Equal, NotEqual}

// Evaluate applies op to lhs and rhs. Unknown operators evaluate to false.
func Evaluate[T cmp.Ordered](op Operator, lhs, rhs T) bool {
	switch op {
	case GreaterThan:
		return lhs > rhs
	case LessThan:
		return lhs < rhs
	case Equal:
		return lhs == rhs
	case NotEqual:
		return lhs != rhs
	default:
		return false
	}
}

// Func returns the comparison as a plain function value.
func Func[T cmp.Ordered](op Operator) func(lhs, rhs T) bool {
	return func(lhs, rhs T) bool {
		return Evaluate(op, lhs, rhs)
	}
}

// Symbol returns the textual form of the operator (">", "<", "==", "!=").
func (op Operator) Symbol() string {
	switch op {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	default:
		return "?"
	}
}

func (op Operator) String() string {
	switch op {
	case GreaterThan:
		return "GreaterThan"
	case LessThan:
		return "LessThan"
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	default:
		return fmt.Sprintf("Operator(%d)", int8(op))
	}
}

// Valid reports whether op is one of the four known comparisons.
func (op Operator) Valid() bool {
	return op >= GreaterThan && op <= NotEqual
}

// ParseOperator accepts either the symbol or the name of an operator.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case ">", "GreaterThan", "gt":
		return GreaterThan, nil
	case "<", "LessThan", "lt":
		return LessThan, nil
	case "==", "Equal", "eq":
		return Equal, nil
	case "!=", "NotEqual", "ne":
		return NotEqual, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
}

// MarshalText encodes the operator as its symbol.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int8(op))
	}
	return []byte(op.Symbol()), nil
}

// UnmarshalText decodes symbols and names accepted by ParseOperator.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
