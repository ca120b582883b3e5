package domain

import "github.com/google/uuid"

// ChangeOperation is the kind of mutation a change event describes.
type ChangeOperation string

const (
	ChangeOpInsert ChangeOperation = "insert"
	ChangeOpUpdate ChangeOperation = "update"
	ChangeOpDelete ChangeOperation = "delete"
)

// ChangeEvent is one committed mutation on the wish card collection, as
// delivered by the store's change feed. UpdatedFields holds the new
// values of the columns that changed, keyed by column name; it is empty
// for inserts and deletes.
type ChangeEvent struct {
	Operation     ChangeOperation
	WishCardID    uuid.UUID
	UpdatedFields map[string]string
}

// StatusChangedTo reports whether the event is an update that set the
// card's status to the given value.
func (e ChangeEvent) StatusChangedTo(status WishCardStatus) bool {
	if e.Operation != ChangeOpUpdate {
		return false
	}
	v, ok := e.UpdatedFields["status"]
	return ok && v == string(status)
}

// IsOrdered reports the one transition fulfillment acts on: a donor's
// confirmed purchase moved the card to ordered.
func (e ChangeEvent) IsOrdered() bool {
	return e.StatusChangedTo(WishCardStatusOrdered)
}

// IsPublished reports a transition to published. Recognized but currently
// handled as a no-op extension point.
func (e ChangeEvent) IsPublished() bool {
	return e.StatusChangedTo(WishCardStatusPublished)
}
