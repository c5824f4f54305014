package model

import "time"

// AccountHolder is a bank customer who may own accounts, solely or
// jointly. The holder's lifecycle is not owned by any account.
type AccountHolder struct {
	ID        int
	Name      string
	BirthDate time.Time
}

// AgeOn returns the holder's age in whole years as of the given date.
func (h AccountHolder) AgeOn(date time.Time) int {
	years := date.Year() - h.BirthDate.Year()
	anniversary := h.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(date) {
		years--
	}
	return years
}
