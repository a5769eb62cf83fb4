package store

import "time"

// User is an account that owns people, groups and relationship types.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname,omitempty"`
	Locale       string    `json:"locale,omitempty"`
	DiscordID    string    `json:"discordId,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Person is one contact in a user's ledger.
type Person struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Nickname            string            `json:"nickname,omitempty"`
	Surname             string            `json:"surname,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	LastContact         *time.Time        `json:"lastContact,omitempty"`
	Groups              []Group           `json:"groups"`
	RelationshipToOwner *RelationshipType `json:"relationshipToUser,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// Group is a named bucket of people. Color is optional; display layers fall
// back to a default when it is empty.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// RelationshipType is one entry of a user's type catalogue. Name is only set
// for default types and never changes; Label is what the user sees and may
// be edited freely. InverseID references the type describing the same
// relationship from the other side; symmetric types reference themselves.
type RelationshipType struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Label     string `json:"label"`
	Color     string `json:"color,omitempty"`
	InverseID string `json:"inverseId,omitempty"`
}

// Relationship is one directed relationship record between two people.
type Relationship struct {
	ID              string `json:"id"`
	PersonID        string `json:"personId"`
	RelatedPersonID string `json:"relatedPersonId"`
	TypeID          string `json:"typeId,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ImportantDate is a dated event attached to a person, optionally with a
// reminder.
type ImportantDate struct {
	ID               string     `json:"id"`
	PersonID         string     `json:"personId"`
	Title            string     `json:"title"`
	Date             time.Time  `json:"date"`
	ReminderEnabled  bool       `json:"reminderEnabled"`
	ReminderType     string     `json:"reminderType,omitempty"`
	Interval         int        `json:"interval,omitempty"`
	IntervalUnit     string     `json:"intervalUnit,omitempty"`
	LastReminderSent *time.Time `json:"lastReminderSent,omitempty"`
}

// ReminderCandidate is one reminder-enabled important date joined with the
// person and owning user, as scanned by the reminder daemon. The daemon
// decides whether the reminder is actually due.
type ReminderCandidate struct {
	DateID           string
	Title            string
	Date             time.Time
	ReminderType     string
	Interval         int
	IntervalUnit     string
	LastReminderSent *time.Time
	PersonName       string
	UserID           string
	UserDiscordID    string
}

// ExportRelationship is a relationship record as it appears in a data
// export, with the related person named inline.
type ExportRelationship struct {
	RelatedPersonID string            `json:"relatedPersonId"`
	RelatedPerson   string            `json:"relatedPerson"`
	Type            *RelationshipType `json:"relationshipType,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// ExportPerson is one person with everything a user would want back out of
// the system.
type ExportPerson struct {
	Person
	Relationships []ExportRelationship `json:"relationships"`
}

// Export is the full data export for one user.
type Export struct {
	User              *User              `json:"user"`
	People            []ExportPerson     `json:"people"`
	Groups            []Group            `json:"groups"`
	RelationshipTypes []RelationshipType `json:"relationshipTypes"`
	ExportedAt        time.Time          `json:"exportedAt"`
}
