package models

import (
	"strconv"
	"strings"
)

// PersonName holds the given and family name of a record.
type PersonName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Record represents one person in the directory. Records are immutable once
// loaded; the ID only exists to keep identities stable across re-sorts.
type Record struct {
	ID         string     `json:"id"`
	Name       PersonName `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Age        int        `json:"age"`
	Gender     string     `json:"gender"`
	Country    string     `json:"country"`
	PictureURL string     `json:"picture_url"`
}

// FullName joins first and last name with a single space.
func (r Record) FullName() string {
	return strings.TrimSpace(r.Name.First + " " + r.Name.Last)
}

// SearchText returns the haystack used by the free-text search: every field
// except the ID, concatenated without separators in the order
// first, last, email, phone, age, gender, country, picture URL.
func (r Record) SearchText() string {
	var b strings.Builder
	b.Grow(len(r.Name.First) + len(r.Name.Last) + len(r.Email) + len(r.Phone) +
		len(r.Gender) + len(r.Country) + len(r.PictureURL) + 3)
	b.WriteString(r.Name.First)
	b.WriteString(r.Name.Last)
	b.WriteString(r.Email)
	b.WriteString(r.Phone)
	b.WriteString(strconv.Itoa(r.Age))
	b.WriteString(r.Gender)
	b.WriteString(r.Country)
	b.WriteString(r.PictureURL)
	return b.String()
}
