package store

import (
	"database/sql"
	"errors"
	"time"
)

// AlertType represents the kind of debounced event that raised an alert.
type AlertType string

const (
	// AlertSitConfirmed is raised when sitting has held for the
	// confirmation delay.
	AlertSitConfirmed AlertType = "sit_confirmed"
	// AlertFallDetected is raised on a standing-to-fallen transition
	// inside the fall window.
	AlertFallDetected AlertType = "fall_detected"
)

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	return t == AlertSitConfirmed || t == AlertFallDetected
}

// Alert represents a confirmed posture event stored in the database.
type Alert struct {
	ID           string
	SessionID    string
	Type         AlertType
	Label        string
	DetectedAt   time.Time
	Acknowledged bool
}

// AlertRepository provides CRUD operations for alerts.
type AlertRepository struct {
	db *sql.DB
}

// Alerts returns the alert repository for this store.
func (s *Store) Alerts() *AlertRepository {
	return &AlertRepository{db: s.db}
}

// Create inserts a new alert into the database.
func (r *AlertRepository) Create(a *Alert) error {
	if a.DetectedAt.IsZero() {
		a.DetectedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO alerts (id, session_id, type, label, detected_at, acknowledged)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.SessionID, string(a.Type), a.Label, a.DetectedAt, a.Acknowledged,
	)
	return err
}

// GetByID retrieves an alert by its ID.
func (r *AlertRepository) GetByID(id string) (*Alert, error) {
	a := &Alert{}
	var alertType string
	var acknowledged int

	err := r.db.QueryRow(
		`SELECT id, session_id, type, label, detected_at, acknowledged
		 FROM alerts WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.SessionID, &alertType, &a.Label, &a.DetectedAt, &acknowledged)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Type = AlertType(alertType)
	a.Acknowledged = acknowledged != 0
	return a, nil
}

// List retrieves alerts, newest first. An empty typeFilter returns all
// alerts; otherwise only alerts of that type.
func (r *AlertRepository) List(typeFilter AlertType) ([]*Alert, error) {
	query := `SELECT id, session_id, type, label, detected_at, acknowledged
	          FROM alerts ORDER BY detected_at DESC`
	args := []any{}

	if typeFilter != "" {
		query = `SELECT id, session_id, type, label, detected_at, acknowledged
		         FROM alerts WHERE type = ? ORDER BY detected_at DESC`
		args = append(args, string(typeFilter))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		a := &Alert{}
		var alertType string
		var acknowledged int

		err := rows.Scan(&a.ID, &a.SessionID, &alertType, &a.Label, &a.DetectedAt, &acknowledged)
		if err != nil {
			return nil, err
		}

		a.Type = AlertType(alertType)
		a.Acknowledged = acknowledged != 0
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// ListBySession retrieves all alerts raised during one session.
func (r *AlertRepository) ListBySession(sessionID string) ([]*Alert, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, type, label, detected_at, acknowledged
		 FROM alerts WHERE session_id = ? ORDER BY detected_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		a := &Alert{}
		var alertType string
		var acknowledged int

		err := rows.Scan(&a.ID, &a.SessionID, &alertType, &a.Label, &a.DetectedAt, &acknowledged)
		if err != nil {
			return nil, err
		}

		a.Type = AlertType(alertType)
		a.Acknowledged = acknowledged != 0
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// Acknowledge marks an alert as seen by the operator.
func (r *AlertRepository) Acknowledge(id string) error {
	result, err := r.db.Exec(`UPDATE alerts SET acknowledged = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an alert from the database by its ID.
func (r *AlertRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
