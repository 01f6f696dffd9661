// Package bench times the search strategies against a loaded directory and
// hands each result to a Reporter.
package bench

import "fmt"

// Strategy identifies one sort/index + search pairing.
type Strategy int

const (
	// StrategyLinear scans the unsorted directory. Its duration is the
	// baseline for the bubble sort budget.
	StrategyLinear Strategy = iota
	// StrategyBubbleJump bubble sorts, then jump searches.
	StrategyBubbleJump
	// StrategyQuickBinary quicksorts, then binary searches.
	StrategyQuickBinary
	// StrategyHash builds a hash table, then looks names up.
	StrategyHash
)

// Strategies returns every strategy in run order.
func Strategies() []Strategy {
	return []Strategy{StrategyLinear, StrategyBubbleJump, StrategyQuickBinary, StrategyHash}
}

// String returns the name printed in reports.
func (s Strategy) String() string {
	switch s {
	case StrategyLinear:
		return "linear search"
	case StrategyBubbleJump:
		return "bubble sort + jump search"
	case StrategyQuickBinary:
		return "quick sort + binary search"
	case StrategyHash:
		return "hash table"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Key returns the short identifier stored in run history.
func (s Strategy) Key() string {
	switch s {
	case StrategyLinear:
		return "linear"
	case StrategyBubbleJump:
		return "bubble-jump"
	case StrategyQuickBinary:
		return "quick-binary"
	case StrategyHash:
		return "hash"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a Key back into a Strategy.
func ParseStrategy(key string) (Strategy, bool) {
	for _, s := range Strategies() {
		if s.Key() == key {
			return s, true
		}
	}
	return 0, false
}
