package pipeline

import (
	"fmt"

	"github.com/noah-isme/user-directory/internal/models"
)

// directoryFixture builds 25 records: indexes 0-14 are female, 15-24 male;
// odd indexes live in the US (12), even ones in FR (13). First names sort in
// index order.
func directoryFixture() []models.Record {
	records := make([]models.Record, 0, 25)
	for i := 0; i < 25; i++ {
		gender := "female"
		if i >= 15 {
			gender = "male"
		}
		country := "FR"
		if i%2 == 1 {
			country = "US"
		}
		records = append(records, models.Record{
			ID:         fmt.Sprintf("id-%02d", i),
			Name:       models.PersonName{First: fmt.Sprintf("Person%02d", i), Last: "Tester"},
			Email:      fmt.Sprintf("person%02d@example.com", i),
			Phone:      fmt.Sprintf("555-01%02d", i),
			Age:        20 + i%7,
			Gender:     gender,
			Country:    country,
			PictureURL: fmt.Sprintf("https://example.com/%02d.jpg", i),
		})
	}
	return records
}

func ids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func firstNames(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name.First)
	}
	return out
}
