package pipeline

import "fmt"

// State is the position of a Pipeline in its lifecycle:
//
//	Idle -> BuildingIndex -> IndexReady -> Transforming -> Done
//
// Idle may also move straight to IndexReady through UseIndex. Any state
// moves to Failed on the first error.
type State int

const (
	StateIdle State = iota
	StateBuildingIndex
	StateIndexReady
	StateTransforming
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuildingIndex:
		return "building-index"
	case StateIndexReady:
		return "index-ready"
	case StateTransforming:
		return "transforming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
