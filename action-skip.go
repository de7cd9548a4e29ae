package droute

import "context"

// Skip does nothing.
type Skip struct{}

var _ Action = Skip{}

func (Skip) Act(context.Context, *State, Exchanger) error {
	return nil
}

func (Skip) UsedUpstreams() []Label {
	return nil
}

func (Skip) String() string {
	return "Skip"
}
