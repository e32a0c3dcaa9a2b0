package validation

import "github.com/calloway/quill-api/internal/domain"

// Reconcile computes the RelationDelta that moves a many-to-many relation
// from the currently persisted label set to the client-supplied target set.
//
// Connect carries every target label: applying a connect is
// connect-if-absent, so repeating it against already-connected rows is a
// no-op and the computation is idempotent. Disconnect is current minus
// target: every persisted label the client no longer wants keeps its
// entity but loses its edge.
//
// Callers must invoke Reconcile only when the relation field was present in
// the request; an absent field means the relation is left untouched. An
// explicit empty target disconnects the full current set.
func Reconcile(current, target []string) domain.RelationDelta {
	inTarget := make(map[string]struct{}, len(target))

	delta := domain.RelationDelta{}
	for _, label := range target {
		if _, dup := inTarget[label]; dup {
			continue
		}
		inTarget[label] = struct{}{}
		delta.Connect = append(delta.Connect, label)
	}

	for _, label := range current {
		if _, keep := inTarget[label]; !keep {
			delta.Disconnect = append(delta.Disconnect, label)
		}
	}

	return delta
}
