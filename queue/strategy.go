package queue

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidStrategy = errors.New("invalid counting strategy")

// Strategy selects how active jobs are counted for a queue.
type Strategy string

const (
	// StrategySimple reports the pending length of the queue only.
	StrategySimple Strategy = "simple"
	// StrategyComposite adds every registered worker that holds a task.
	StrategyComposite Strategy = "composite"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySimple:
		return StrategySimple, nil
	case StrategyComposite:
		return StrategyComposite, nil
	}
	return "", fmt.Errorf("%w: %q (want simple or composite)", ErrInvalidStrategy, s)
}

func (s Strategy) String() string { return string(s) }
