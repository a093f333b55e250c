package domain

import "time"

// Client is the borrower record matched to loans by BorrowerRef. Identity
// and contact fields are carried for reporting collaborators but play no
// role in calculation; only DateOfBirth feeds the default-probability model.
type Client struct {
	BorrowerRef string
	FullName    string
	Contact     string
	DateOfBirth *time.Time
}

// Age returns the borrower's age in whole years at the given date. The
// second return value is false when the date of birth is unknown, which
// forces the PD fallback downstream.
func (c *Client) Age(asOf time.Time) (int, bool) {
	if c == nil || c.DateOfBirth == nil {
		return 0, false
	}

	dob := *c.DateOfBirth
	age := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() ||
		(asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		age--
	}

	if age < 0 {
		return 0, false
	}

	return age, true
}
