package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestChangeEvent_StatusChangedTo(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name   string
		event  ChangeEvent
		status WishCardStatus
		want   bool
	}{
		{
			name: "update to ordered",
			event: ChangeEvent{
				Operation:     ChangeOpUpdate,
				WishCardID:    id,
				UpdatedFields: map[string]string{"status": "ordered"},
			},
			status: WishCardStatusOrdered,
			want:   true,
		},
		{
			name: "update to a different status",
			event: ChangeEvent{
				Operation:     ChangeOpUpdate,
				UpdatedFields: map[string]string{"status": "draft"},
			},
			status: WishCardStatusOrdered,
			want:   false,
		},
		{
			name: "update without status in the changed set",
			event: ChangeEvent{
				Operation:     ChangeOpUpdate,
				UpdatedFields: map[string]string{"locked_by": id.String()},
			},
			status: WishCardStatusOrdered,
			want:   false,
		},
		{
			name: "insert carrying an ordered status is not a transition",
			event: ChangeEvent{
				Operation:     ChangeOpInsert,
				UpdatedFields: map[string]string{"status": "ordered"},
			},
			status: WishCardStatusOrdered,
			want:   false,
		},
		{
			name:   "delete",
			event:  ChangeEvent{Operation: ChangeOpDelete},
			status: WishCardStatusOrdered,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.StatusChangedTo(tt.status); got != tt.want {
				t.Errorf("StatusChangedTo(%s) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestChangeEvent_Classifiers(t *testing.T) {
	t.Parallel()

	ordered := ChangeEvent{
		Operation:     ChangeOpUpdate,
		UpdatedFields: map[string]string{"status": "ordered"},
	}
	if !ordered.IsOrdered() || ordered.IsPublished() {
		t.Error("ordered transition misclassified")
	}

	published := ChangeEvent{
		Operation:     ChangeOpUpdate,
		UpdatedFields: map[string]string{"status": "published"},
	}
	if !published.IsPublished() || published.IsOrdered() {
		t.Error("published transition misclassified")
	}

	unrelated := ChangeEvent{
		Operation:     ChangeOpUpdate,
		UpdatedFields: map[string]string{"child_story": "updated"},
	}
	if unrelated.IsOrdered() || unrelated.IsPublished() {
		t.Error("non-status update misclassified")
	}
}

func TestWishCardStatus_IsViewable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status         WishCardStatus
		includeDonated bool
		want           bool
	}{
		{WishCardStatusPublished, false, true},
		{WishCardStatusPublished, true, true},
		{WishCardStatusDonated, false, false},
		{WishCardStatusDonated, true, true},
		{WishCardStatusDraft, true, false},
		{WishCardStatusOrdered, true, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsViewable(tt.includeDonated); got != tt.want {
			t.Errorf("%s.IsViewable(%v) = %v, want %v", tt.status, tt.includeDonated, got, tt.want)
		}
	}
}
