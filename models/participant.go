package models

// Participant is a panel member who must be present in an interview.
// The profile fields mirror what the directory stores: the timezone and
// working-hours values arrive as raw strings from upstream and are only
// normalized when a scheduling request touches them.
type Participant struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"` // doubles as the calendar identifier

	// Raw profile values; may be missing or malformed for incomplete profiles.
	Timezone     string   `bson:"timezone,omitempty" json:"timezone,omitempty"`
	WorkingDays  []string `bson:"workingDays,omitempty" json:"workingDays,omitempty"`   // e.g. ["monday", ...]
	WorkingStart string   `bson:"workingStart,omitempty" json:"workingStart,omitempty"` // "09:00"
	WorkingEnd   string   `bson:"workingEnd,omitempty" json:"workingEnd,omitempty"`     // "17:00"
}
