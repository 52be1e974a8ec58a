package model

// Area groups slots into a named section of the facility (a floor,
// a wing).  The allocator can restrict its search to one area, and
// synthesized slots land in DefaultAreaID unless told otherwise.
type Area struct {
	ID   uint64 `json:"id"`   // parking_areas.id
	Name string `json:"name"` // parking_areas.name
}

// DefaultAreaID is where slots synthesized by the allocator are
// placed when the caller did not restrict allocation to an area.
const DefaultAreaID uint64 = 1
