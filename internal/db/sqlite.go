// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rota/internal/calendar"
)

const dayLayout = "2006-01-02"

// SQLite implements calendar.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
}

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLocation sets the time zone used to compute the stored day range of
// each event. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *SQLite) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

var _ calendar.Repository = (*SQLite)(nil)

// CreateResource adds a resource after the existing ones.
func (s *SQLite) CreateResource(ctx context.Context, r calendar.Resource) error {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	if r.ID == "" {
		return calendar.ErrEmptyResourceID
	}
	if r.Title == "" {
		return calendar.ErrEmptyTitle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := resourceExists(ctx, tx, r.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", calendar.ErrDuplicateResource, r.ID)
	}

	query := `
		INSERT INTO resources (id, title, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM resources))
	`
	if _, err := tx.ExecContext(ctx, query, r.ID, r.Title); err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListResources returns all resources in row order.
func (s *SQLite) ListResources(ctx context.Context) ([]calendar.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM resources ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var resources []calendar.Resource
	for rows.Next() {
		var r calendar.Resource
		if err := rows.Scan(&r.ID, &r.Title); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

// CreateEvent stores an event, assigning a new id when ev.ID is empty.
// Returns ErrResourceNotFound if the event names an unknown resource.
func (s *SQLite) CreateEvent(ctx context.Context, ev *calendar.RawEvent) error {
	startDay, endDay, err := s.dayRange(*ev)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkResource(ctx, tx, ev.ResourceID); err != nil {
		return err
	}

	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO events (
			id, title, start_value, end_value, resource_id, color, start_day, end_day
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		id,
		ev.Title,
		ev.Start.String(),
		nullableDate(ev.End),
		nullableString(ev.ResourceID),
		ev.Color,
		startDay,
		endDay,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	ev.ID = id
	return nil
}

// GetEvent retrieves an event by id.
func (s *SQLite) GetEvent(ctx context.Context, id string) (calendar.RawEvent, error) {
	query := `
		SELECT id, title, start_value, end_value, resource_id, color
		FROM events
		WHERE id = ?
	`
	ev, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.RawEvent{}, fmt.Errorf("%w: %s", calendar.ErrEventNotFound, id)
	}
	if err != nil {
		return calendar.RawEvent{}, fmt.Errorf("querying event: %w", err)
	}
	return ev, nil
}

// ListEvents returns every event in insertion order.
func (s *SQLite) ListEvents(ctx context.Context) ([]calendar.RawEvent, error) {
	query := `
		SELECT id, title, start_value, end_value, resource_id, color
		FROM events
		ORDER BY seq
	`
	return s.queryEvents(ctx, query)
}

// ListEventsBetween returns events whose day range overlaps [start, end).
func (s *SQLite) ListEventsBetween(ctx context.Context, start, end time.Time) ([]calendar.RawEvent, error) {
	query := `
		SELECT id, title, start_value, end_value, resource_id, color
		FROM events
		WHERE start_day < ? AND end_day > ?
		ORDER BY seq
	`
	return s.queryEvents(ctx, query, end.In(s.loc).Format(dayLayout), start.In(s.loc).Format(dayLayout))
}

// ApplyReschedule stores the event record carried by a committed drag.
func (s *SQLite) ApplyReschedule(ctx context.Context, intent calendar.RescheduleIntent) error {
	ev := intent.Event
	startDay, endDay, err := s.dayRange(ev)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkResource(ctx, tx, ev.ResourceID); err != nil {
		return err
	}

	query := `
		UPDATE events
		SET start_value = ?, end_value = ?, resource_id = ?, start_day = ?, end_day = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		ev.Start.String(),
		nullableDate(ev.End),
		nullableString(ev.ResourceID),
		startDay,
		endDay,
		ev.ID,
	)
	if err != nil {
		return fmt.Errorf("rescheduling event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", calendar.ErrEventNotFound, ev.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteEvent removes an event.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", calendar.ErrEventNotFound, id)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// dayRange computes the canonical day bounds stored alongside an event for
// range queries.
func (s *SQLite) dayRange(ev calendar.RawEvent) (string, string, error) {
	if _, ok := ev.Start.Time(s.loc); !ok {
		return "", "", fmt.Errorf("%w: %q", calendar.ErrInvalidEventStart, ev.Start.String())
	}
	c := calendar.NormalizeEvent(ev, s.loc)
	return c.Start.Format(dayLayout), c.End.Format(dayLayout), nil
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]calendar.RawEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []calendar.RawEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (calendar.RawEvent, error) {
	var (
		ev         calendar.RawEvent
		start      string
		end        sql.NullString
		resourceID sql.NullString
	)
	if err := row.Scan(&ev.ID, &ev.Title, &start, &end, &resourceID, &ev.Color); err != nil {
		return calendar.RawEvent{}, err
	}
	ev.Start = calendar.Text(start)
	if end.Valid {
		ev.End = calendar.Text(end.String)
	}
	if resourceID.Valid {
		ev.ResourceID = resourceID.String
	}
	return ev, nil
}

func resourceExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("checking resource: %w", err)
	}
	return count > 0, nil
}

// checkResource accepts an empty id (unassigned event) or a known one.
func checkResource(ctx context.Context, tx *sql.Tx, id string) error {
	if id == "" {
		return nil
	}
	ok, err := resourceExists(ctx, tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", calendar.ErrResourceNotFound, id)
	}
	return nil
}

func nullableDate(d calendar.DateValue) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
