package domain

import "time"

type ActivityType string

const (
	ActivityTypeClub     ActivityType = "Club"
	ActivityTypeSports   ActivityType = "Sports"
	ActivityTypeEvent    ActivityType = "Event"
	ActivityTypeWorkshop ActivityType = "Workshop"
)

// ActivityTypes lists the fixed enumeration in display order.
var ActivityTypes = []ActivityType{
	ActivityTypeClub,
	ActivityTypeSports,
	ActivityTypeEvent,
	ActivityTypeWorkshop,
}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeClub, ActivityTypeSports, ActivityTypeEvent, ActivityTypeWorkshop:
		return true
	}
	return false
}

// Activity is a published extracurricular activity. Activities are created only
// by admins and are immutable once created.
type Activity struct {
	ID    ActivityID
	Title string
	Type  ActivityType

	// Date is the scheduled date as an ISO "YYYY-MM-DD" string. ISO dates
	// order correctly under plain string comparison, which the student-facing
	// listing relies on.
	Date string

	Location    string
	Description string

	CreatedAt time.Time
}
