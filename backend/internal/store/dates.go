package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// CreateImportantDate attaches a dated event to a person.
func (r *Repository) CreateImportantDate(ctx context.Context, userID string, date ImportantDate) (*ImportantDate, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	dateID := uuid.NewString()

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		WHERE p.deletedAt IS NULL
		CREATE (p)-[:HAS_DATE]->(d:ImportantDate {
			id: $dateID,
			title: $title,
			date: datetime($date),
			reminderEnabled: $reminderEnabled,
			reminderType: $reminderType,
			interval: $interval,
			intervalUnit: $intervalUnit,
			createdAt: datetime()
		})
		RETURN d.id as id
	`, map[string]interface{}{
		"userID":          userID,
		"personID":        date.PersonID,
		"dateID":          dateID,
		"title":           date.Title,
		"date":            date.Date.UTC().Format(time.RFC3339),
		"reminderEnabled": date.ReminderEnabled,
		"reminderType":    date.ReminderType,
		"interval":        date.Interval,
		"intervalUnit":    date.IntervalUnit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create important date: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return nil, ErrPersonNotFound{PersonID: date.PersonID}
	}

	r.logger.Info("Important date created",
		zap.String("user_id", userID),
		zap.String("date_id", dateID),
	)

	created := date
	created.ID = dateID
	return &created, nil
}

// ListImportantDates fetches the live dates attached to one person.
func (r *Repository) ListImportantDates(ctx context.Context, userID, personID string) ([]ImportantDate, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})-[:HAS_DATE]->(d:ImportantDate)
		WHERE p.deletedAt IS NULL AND d.deletedAt IS NULL
		RETURN d.id as id, p.id as person_id, d.title as title, d.date as date,
			d.reminderEnabled as reminder_enabled, d.reminderType as reminder_type,
			d.interval as interval, d.intervalUnit as interval_unit,
			d.lastReminderSent as last_reminder_sent
		ORDER BY date
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return nil, fmt.Errorf("failed to list important dates: %w", err)
	}

	var dates []ImportantDate
	for result.Next(ctx) {
		dates = append(dates, *importantDateFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return dates, nil
}

// DeleteImportantDate soft-deletes a dated event.
func (r *Repository) DeleteImportantDate(ctx context.Context, userID, dateID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person)-[:HAS_DATE]->(d:ImportantDate {id: $dateID})
		WHERE d.deletedAt IS NULL
		SET d.deletedAt = datetime()
		RETURN d.id as id
	`, map[string]interface{}{"userID": userID, "dateID": dateID})
	if err != nil {
		return fmt.Errorf("failed to delete important date: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrRelationshipNotFound{RelationshipID: dateID}
	}
	return nil
}

// ReminderCandidates scans every reminder-enabled date whose owner has a
// linked Discord account. The reminder daemon decides which candidates are
// actually due; this query only narrows the scan.
func (r *Repository) ReminderCandidates(ctx context.Context) ([]ReminderCandidate, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User)-[:OWNS]->(p:Person)-[:HAS_DATE]->(d:ImportantDate)
		WHERE p.deletedAt IS NULL AND d.deletedAt IS NULL
			AND d.reminderEnabled = true
			AND u.discordId IS NOT NULL AND u.discordId <> ''
		RETURN d.id as id, d.title as title, d.date as date,
			d.reminderType as reminder_type, d.interval as interval,
			d.intervalUnit as interval_unit, d.lastReminderSent as last_reminder_sent,
			p.name as person_name, u.id as user_id, u.discordId as discord_id
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reminder candidates: %w", err)
	}

	var candidates []ReminderCandidate
	for result.Next(ctx) {
		record := result.Record()
		c := ReminderCandidate{
			DateID:        getStringFromRecord(record, "id"),
			Title:         getStringFromRecord(record, "title"),
			ReminderType:  getStringFromRecord(record, "reminder_type"),
			Interval:      getIntFromRecord(record, "interval"),
			IntervalUnit:  getStringFromRecord(record, "interval_unit"),
			PersonName:    getStringFromRecord(record, "person_name"),
			UserID:        getStringFromRecord(record, "user_id"),
			UserDiscordID: getStringFromRecord(record, "discord_id"),
		}
		if t, ok := getTimeFromRecord(record, "date"); ok {
			c.Date = t
		}
		if t, ok := getTimeFromRecord(record, "last_reminder_sent"); ok {
			c.LastReminderSent = &t
		}
		candidates = append(candidates, c)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return candidates, nil
}

// MarkReminderSent stamps a date after successful delivery so the recurrence
// rule can hold off until the next interval.
func (r *Repository) MarkReminderSent(ctx context.Context, dateID string, sentAt time.Time) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (d:ImportantDate {id: $dateID})
		SET d.lastReminderSent = datetime($sentAt)
		RETURN d.id as id
	`, map[string]interface{}{
		"dateID": dateID,
		"sentAt": sentAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return fmt.Errorf("failed to verify reminder update: %w", err)
	}
	return nil
}

func importantDateFromRecord(record *neo4j.Record) *ImportantDate {
	d := &ImportantDate{
		ID:              getStringFromRecord(record, "id"),
		PersonID:        getStringFromRecord(record, "person_id"),
		Title:           getStringFromRecord(record, "title"),
		ReminderEnabled: getBoolFromRecord(record, "reminder_enabled"),
		ReminderType:    getStringFromRecord(record, "reminder_type"),
		Interval:        getIntFromRecord(record, "interval"),
		IntervalUnit:    getStringFromRecord(record, "interval_unit"),
	}
	if t, ok := getTimeFromRecord(record, "date"); ok {
		d.Date = t
	}
	if t, ok := getTimeFromRecord(record, "last_reminder_sent"); ok {
		d.LastReminderSent = &t
	}
	return d
}
