package domain

// WishCardStatus represents the lifecycle state of a wish card.
//
// Cards start as drafts, become visible to donors when published, are
// marked ordered once the donation workflow confirms a purchase, and end
// as donated when the gift reaches the child. The lock held during
// checkout is not a status; it lives in the card's lock fields.
type WishCardStatus string

const (
	WishCardStatusDraft     WishCardStatus = "draft"
	WishCardStatusPublished WishCardStatus = "published"
	WishCardStatusOrdered   WishCardStatus = "ordered"
	WishCardStatusDonated   WishCardStatus = "donated"
)

func (s WishCardStatus) String() string { return string(s) }

func (s WishCardStatus) IsValid() bool {
	switch s {
	case WishCardStatusDraft, WishCardStatusPublished, WishCardStatusOrdered, WishCardStatusDonated:
		return true
	}
	return false
}

// IsViewable reports whether cards with this status appear in public
// listings. Donated cards are viewable only when the caller opts in.
func (s WishCardStatus) IsViewable(includeDonated bool) bool {
	if s == WishCardStatusPublished {
		return true
	}
	return includeDonated && s == WishCardStatusDonated
}

// DonationStatus represents the state of a donor's pledge.
type DonationStatus string

const (
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusOrdered   DonationStatus = "ordered"
	DonationStatusDelivered DonationStatus = "delivered"
)

func (s DonationStatus) String() string { return string(s) }

func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusConfirmed, DonationStatusOrdered, DonationStatusDelivered:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleDonor   UserRole = "donor"
	UserRolePartner UserRole = "partner"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleDonor, UserRolePartner, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
