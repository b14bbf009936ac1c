package domain

import "time"

// Contact is a single address-book entry owned by exactly one user.
type Contact struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Birthday  time.Time `json:"birthday" db:"birthday"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasBirthdayWithin reports whether the contact's birthday (month and day,
// year ignored) falls on any of the days in [from, from+days] inclusive.
// Walking the window day by day keeps the month/year wraparound correct,
// e.g. a window opened on Dec 31 includes Jan 1.
func (c Contact) HasBirthdayWithin(from time.Time, days int) bool {
	bMonth, bDay := c.Birthday.Month(), c.Birthday.Day()
	for i := 0; i <= days; i++ {
		d := from.AddDate(0, 0, i)
		if d.Month() == bMonth && d.Day() == bDay {
			return true
		}
	}
	return false
}
