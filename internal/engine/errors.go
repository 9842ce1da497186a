package engine

import "fmt"

// InsufficientGemsError rejects a gacha draw before any state changes.
// It should be shown to the user with the shortfall.
type InsufficientGemsError struct {
	Cost    int
	Balance int
}

func (e InsufficientGemsError) Error() string {
	return fmt.Sprintf("need %d more gems (cost %d, balance %d)", e.Cost-e.Balance, e.Cost, e.Balance)
}

// Short returns the shortfall.
func (e InsufficientGemsError) Short() int { return e.Cost - e.Balance }
