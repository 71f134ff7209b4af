// Package store persists saved connection configurations and their
// categories as JSON files in a configuration directory.
//
// Passwords are stored in plain text, matching the surrounding desktop
// application; the files live under the user's private config dir.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Connection is one saved database connection.
type Connection struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Engine     string `json:"engine"` // postgres | mysql | sqlite
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	Database   string `json:"database,omitempty"` // file path for sqlite
	CategoryID string `json:"category_id,omitempty"`
}

// Category groups saved connections in the UI.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DSN renders the connection as a driver DSN suitable for exec.Open.
func (c Connection) DSN() string {
	switch c.Engine {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", c.Username, c.Password, c.Host, c.Port, c.Database)
	case "sqlite":
		return c.Database
	default: // postgres
		u := url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:   "/" + c.Database,
		}
		if c.Username != "" {
			if c.Password != "" {
				u.User = url.UserPassword(c.Username, c.Password)
			} else {
				u.User = url.User(c.Username)
			}
		}
		return u.String()
	}
}

func connectionsPath(dir string) string { return filepath.Join(dir, "connections.json") }
func categoriesPath(dir string) string  { return filepath.Join(dir, "categories.json") }

// LoadConnections reads the saved connections. A missing file is an empty
// list, not an error.
func LoadConnections(dir string) ([]Connection, error) {
	var conns []Connection
	if err := loadJSON(connectionsPath(dir), &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// AddConnection appends c (assigning an ID when absent) and persists.
func AddConnection(dir string, c Connection) (Connection, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	conns, err := LoadConnections(dir)
	if err != nil {
		return Connection{}, err
	}
	conns = append(conns, c)
	if err := saveJSON(connectionsPath(dir), conns); err != nil {
		return Connection{}, err
	}
	return c, nil
}

// UpdateConnection replaces the stored connection with the same ID.
func UpdateConnection(dir string, c Connection) error {
	conns, err := LoadConnections(dir)
	if err != nil {
		return err
	}
	for i := range conns {
		if conns[i].ID == c.ID {
			conns[i] = c
			return saveJSON(connectionsPath(dir), conns)
		}
	}
	return fmt.Errorf("connection %q not found", c.ID)
}

// RemoveConnection deletes the stored connection with the given ID.
func RemoveConnection(dir, id string) error {
	conns, err := LoadConnections(dir)
	if err != nil {
		return err
	}
	kept := conns[:0]
	for _, c := range conns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(conns) {
		return fmt.Errorf("connection %q not found", id)
	}
	return saveJSON(connectionsPath(dir), kept)
}

// LoadCategories reads the saved categories. A missing file is an empty
// list, not an error.
func LoadCategories(dir string) ([]Category, error) {
	var cats []Category
	if err := loadJSON(categoriesPath(dir), &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// AddCategory appends cat (assigning an ID when absent) and persists.
func AddCategory(dir string, cat Category) (Category, error) {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	cats, err := LoadCategories(dir)
	if err != nil {
		return Category{}, err
	}
	cats = append(cats, cat)
	if err := saveJSON(categoriesPath(dir), cats); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// RemoveCategory deletes a category and detaches any connections assigned
// to it.
func RemoveCategory(dir, id string) error {
	cats, err := LoadCategories(dir)
	if err != nil {
		return err
	}
	kept := cats[:0]
	for _, c := range cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return fmt.Errorf("category %q not found", id)
	}
	if err := saveJSON(categoriesPath(dir), kept); err != nil {
		return err
	}

	conns, err := LoadConnections(dir)
	if err != nil {
		return err
	}
	changed := false
	for i := range conns {
		if conns[i].CategoryID == id {
			conns[i].CategoryID = ""
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return saveJSON(connectionsPath(dir), conns)
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
