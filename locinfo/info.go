package locinfo

import (
	"fmt"
)

type Kind uint8

const (
	ReverseEdges Kind = iota
	BidirectionalEdges
)

func (k Kind) String() string {
	switch k {
	case ReverseEdges:
		return "ReverseEdges"
	case BidirectionalEdges:
		return "BidirectionalEdges"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Info is the relationship record of one index node. Destinations is only
// meaningful for BidirectionalEdges.
type Info[L any] struct {
	Kind         Kind
	Sources      []L
	Destinations []L
}

func Reverse[L any](sources ...L) *Info[L] {
	return &Info[L]{
		Kind:    ReverseEdges,
		Sources: sources,
	}
}

func Bidirectional[L any](sources, destinations []L) *Info[L] {
	return &Info[L]{
		Kind:         BidirectionalEdges,
		Sources:      sources,
		Destinations: destinations,
	}
}

func (self *Info[L]) String() string {
	if self.Kind == BidirectionalEdges {
		return fmt.Sprintf("%v{sources: %v, destinations: %v}", self.Kind, self.Sources, self.Destinations)
	}
	return fmt.Sprintf("%v{sources: %v}", self.Kind, self.Sources)
}
