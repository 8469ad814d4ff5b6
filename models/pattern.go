package models

// MaxPatterns is the maximum number of weekly patterns a student may select
// for one monthly plan.
const MaxPatterns = 4

// SlotPattern is a weekly recurrence rule selected by the student: one class
// on a given weekday, bounded by an explicit start/end time pair.
type SlotPattern struct {
	ID        string `bson:"id" json:"id"`
	DayOfWeek int    `bson:"day_of_week" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime string `bson:"start_time" json:"startTime"`  // "HH:MM", 24h
	EndTime   string `bson:"end_time" json:"endTime"`      // "HH:MM", 24h
}
