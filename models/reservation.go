package models

// Wire types for the external slot-reservation API.

// BookMonthlyRequest asks the reservation API to hold every occurrence of the
// given patterns between StartDate and EndDate.
type BookMonthlyRequest struct {
	TutorID    string        `json:"tutorId"`
	SubjectID  string        `json:"subjectId"`
	LanguageID string        `json:"languageId"`
	Patterns   []SlotPattern `json:"patterns"`
	StartDate  string        `json:"startDate"`
	EndDate    string        `json:"endDate"`
}

// FailedSlot identifies one day/time combination the reservation API could
// not hold.
type FailedSlot struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

// BookMonthlyResponse is the reservation API's answer. Success false with a
// non-empty FailedSlots list is an application-level rejection, not a
// transport failure: the rest of the plan is still valid.
type BookMonthlyResponse struct {
	Success     bool         `json:"success"`
	HoldID      string       `json:"holdId,omitempty"`
	FailedSlots []FailedSlot `json:"failedSlots,omitempty"`
}
