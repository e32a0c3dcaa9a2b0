package domain

// RelationDelta describes the change to apply to a many-to-many relation:
// labels to connect (creating the labelled entity first when the relation
// direction allows it) and labels whose relation edge should be removed.
// Disconnecting never deletes the related entity, only the edge.
//
// A nil *RelationDelta means the relation field was absent from the request
// and the persisted relation set must be left untouched.
type RelationDelta struct {
	Connect    []string
	Disconnect []string
}

// Empty reports whether the delta changes nothing.
func (d RelationDelta) Empty() bool {
	return len(d.Connect) == 0 && len(d.Disconnect) == 0
}
