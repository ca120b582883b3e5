package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Agency is a partner organization that owns wish cards on behalf of the
// children it serves.
type Agency struct {
	ID               uuid.UUID
	Name             string
	AccountManagerID uuid.UUID
	Phone            *string
	Website          *string
	Address          Address
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Address is an agency's mailing address.
type Address struct {
	Street1 string
	Street2 *string
	City    string
	State   string
	Zipcode string
	Country string
}

// MailingAddress returns the single-line form used in notifications:
// street, city, zip and state, space-separated.
func (a Address) MailingAddress() string {
	return strings.Join([]string{a.Street1, a.City, a.Zipcode, a.State}, " ")
}
