package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Responder represents an alert-type to plugin binding stored in the database.
type Responder struct {
	ID         string
	AlertType  AlertType
	PluginName string
	ActionName string
	Config     json.RawMessage
	Enabled    bool
	CreatedAt  time.Time
}

// ResponderRepository provides CRUD operations for responders.
type ResponderRepository struct {
	db *sql.DB
}

// Responders returns the responder repository for this store.
func (s *Store) Responders() *ResponderRepository {
	return &ResponderRepository{db: s.db}
}

// Create inserts a new responder into the database.
func (r *ResponderRepository) Create(resp *Responder) error {
	resp.CreatedAt = time.Now()

	config := resp.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO responders (id, alert_type, plugin_name, action_name, config, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resp.ID, string(resp.AlertType), resp.PluginName, resp.ActionName, string(config), resp.Enabled, resp.CreatedAt,
	)
	return err
}

// GetByID retrieves a responder by its ID.
func (r *ResponderRepository) GetByID(id string) (*Responder, error) {
	resp := &Responder{}
	var alertType, config string
	var enabled int

	err := r.db.QueryRow(
		`SELECT id, alert_type, plugin_name, action_name, config, enabled, created_at
		 FROM responders WHERE id = ?`,
		id,
	).Scan(&resp.ID, &alertType, &resp.PluginName, &resp.ActionName, &config, &enabled, &resp.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp.AlertType = AlertType(alertType)
	resp.Config = json.RawMessage(config)
	resp.Enabled = enabled != 0
	return resp, nil
}

// List retrieves all responders from the database.
func (r *ResponderRepository) List() ([]*Responder, error) {
	return r.query(
		`SELECT id, alert_type, plugin_name, action_name, config, enabled, created_at
		 FROM responders ORDER BY created_at DESC`,
	)
}

// ListEnabledByType retrieves the enabled responders bound to one alert type.
func (r *ResponderRepository) ListEnabledByType(alertType AlertType) ([]*Responder, error) {
	return r.query(
		`SELECT id, alert_type, plugin_name, action_name, config, enabled, created_at
		 FROM responders WHERE alert_type = ? AND enabled = 1 ORDER BY created_at`,
		string(alertType),
	)
}

func (r *ResponderRepository) query(query string, args ...any) ([]*Responder, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responders []*Responder
	for rows.Next() {
		resp := &Responder{}
		var alertType, config string
		var enabled int

		err := rows.Scan(&resp.ID, &alertType, &resp.PluginName, &resp.ActionName, &config, &enabled, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		resp.AlertType = AlertType(alertType)
		resp.Config = json.RawMessage(config)
		resp.Enabled = enabled != 0
		responders = append(responders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responders, nil
}

// Update updates an existing responder in the database.
func (r *ResponderRepository) Update(resp *Responder) error {
	config := resp.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	enabled := 0
	if resp.Enabled {
		enabled = 1
	}

	result, err := r.db.Exec(
		`UPDATE responders SET alert_type = ?, plugin_name = ?, action_name = ?, config = ?, enabled = ?
		 WHERE id = ?`,
		string(resp.AlertType), resp.PluginName, resp.ActionName, string(config), enabled, resp.ID,
	)
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

// Delete removes a responder from the database by its ID.
func (r *ResponderRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM responders WHERE id = ?`, id)
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
