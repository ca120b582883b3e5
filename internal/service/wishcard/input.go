package wishcard

import (
	"strings"

	"github.com/wishwell/donate-backend/internal/domain"
)

const (
	maxNameLen     = 100
	maxInterestLen = 500
	maxStoryLen    = 2000
	maxItemNameLen = 150

	// maxItemPriceCents caps a single wish item at $10,000.
	maxItemPriceCents = 10_000_00
)

// CreateWishCardInput holds the parameters for creating a wishcard.
type CreateWishCardInput struct {
	ChildFirstName string
	ChildLastName  string
	ChildInterest  string
	ChildStory     string
	WishItemName   string
	WishItemPrice  int64 // cents
}

// Validate checks all fields and collects all errors.
func (i CreateWishCardInput) Validate() error {
	var errs []domain.FieldError

	first := strings.TrimSpace(i.ChildFirstName)
	if first == "" {
		errs = append(errs, domain.FieldError{Field: "childFirstName", Message: "required"})
	}
	if len(first) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "childFirstName", Message: "max 100 characters"})
	}

	if len(strings.TrimSpace(i.ChildLastName)) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "childLastName", Message: "max 100 characters"})
	}

	if len(strings.TrimSpace(i.ChildInterest)) > maxInterestLen {
		errs = append(errs, domain.FieldError{Field: "childInterest", Message: "max 500 characters"})
	}

	if len(strings.TrimSpace(i.ChildStory)) > maxStoryLen {
		errs = append(errs, domain.FieldError{Field: "childStory", Message: "max 2000 characters"})
	}

	item := strings.TrimSpace(i.WishItemName)
	if item == "" {
		errs = append(errs, domain.FieldError{Field: "wishItemName", Message: "required"})
	}
	if len(item) > maxItemNameLen {
		errs = append(errs, domain.FieldError{Field: "wishItemName", Message: "max 150 characters"})
	}

	if i.WishItemPrice <= 0 {
		errs = append(errs, domain.FieldError{Field: "wishItemPrice", Message: "must be positive"})
	}
	if i.WishItemPrice > maxItemPriceCents {
		errs = append(errs, domain.FieldError{Field: "wishItemPrice", Message: "exceeds maximum"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateWishCardInput holds the partial patch for editing a wishcard.
// Nil fields are left untouched.
type UpdateWishCardInput struct {
	ChildFirstName *string
	ChildLastName  *string
	ChildInterest  *string
	ChildStory     *string
	WishItemName   *string
	WishItemPrice  *int64
	Status         *domain.WishCardStatus
}

// Validate checks provided fields only.
func (i UpdateWishCardInput) Validate() error {
	var errs []domain.FieldError

	if i.ChildFirstName != nil && strings.TrimSpace(*i.ChildFirstName) == "" {
		errs = append(errs, domain.FieldError{Field: "childFirstName", Message: "cannot be empty"})
	}
	if i.WishItemName != nil && strings.TrimSpace(*i.WishItemName) == "" {
		errs = append(errs, domain.FieldError{Field: "wishItemName", Message: "cannot be empty"})
	}
	if i.WishItemPrice != nil && (*i.WishItemPrice <= 0 || *i.WishItemPrice > maxItemPriceCents) {
		errs = append(errs, domain.FieldError{Field: "wishItemPrice", Message: "out of range"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// toParams converts the input into a repository patch, trimming text fields.
func (i UpdateWishCardInput) toParams() domain.WishCardUpdateParams {
	return domain.WishCardUpdateParams{
		ChildFirstName: trimOrNil(i.ChildFirstName),
		ChildLastName:  trimOrNil(i.ChildLastName),
		ChildInterest:  trimOrNil(i.ChildInterest),
		ChildStory:     trimOrNil(i.ChildStory),
		WishItemName:   trimOrNil(i.WishItemName),
		WishItemPrice:  i.WishItemPrice,
		Status:         i.Status,
	}
}
