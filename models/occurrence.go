package models

// ClientHint carries availability flags echoed from earlier lookups. They are
// advisory only; the reservation API is the authority at submission time.
type ClientHint struct {
	Available bool `json:"available"`
	Locked    bool `json:"locked"`
}

// OccurrenceSlot is one concrete dated class instance expanded from a
// SlotPattern within the current calendar month.
type OccurrenceSlot struct {
	ID        string     `json:"id"`       // "{dayOfWeek}-{startTime}-{date}", stable across regeneration
	Date      string     `json:"date"`     // "2006-01-02"
	DateTime  string     `json:"dateTime"` // RFC 3339, date + start time
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Hint      ClientHint `json:"hint"`
}

// WeekBucket groups occurrences sharing the same Monday-anchored week.
// Sunday occurrences belong to the week of the previous Monday.
type WeekBucket struct {
	WeekStartDate string           `bson:"week_start_date" json:"weekStartDate"`
	Slots         []OccurrenceSlot `bson:"slots" json:"slots"`
	TotalSlots    int              `bson:"total_slots" json:"totalSlots"`
}
