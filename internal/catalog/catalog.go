// Package catalog serves certification and project records from an
// in-memory SQLite database seeded from the compiled-in content.
package catalog

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/Sreeharips1/portfolio/internal/content"
)

const schema = `
CREATE TABLE certifications (
	position    INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	issuer      TEXT NOT NULL,
	date        TEXT NOT NULL,
	description TEXT NOT NULL,
	skills_json TEXT NOT NULL,
	image_path  TEXT NOT NULL
);

CREATE TABLE projects (
	id                TEXT PRIMARY KEY,
	position          INTEGER NOT NULL UNIQUE,
	title             TEXT NOT NULL,
	short_description TEXT NOT NULL,
	description       TEXT NOT NULL,
	features_json     TEXT NOT NULL,
	github_url        TEXT NOT NULL DEFAULT '',
	report_url        TEXT NOT NULL DEFAULT '',
	photos_json       TEXT NOT NULL,
	enquiry           TEXT NOT NULL DEFAULT ''
);
`

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("not found")

// Catalog is a read-only view over the seeded records.
type Catalog struct {
	db    *sql.DB
	count int
}

// Open creates the in-memory database and seeds it from c.
func Open(c *content.Content) (*Catalog, error) {
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	// Every connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create catalog schema")
	}
	cat := &Catalog{db: db}
	if err := cat.seed(c); err != nil {
		db.Close()
		return nil, err
	}
	return cat, nil
}

func (cat *Catalog) seed(c *content.Content) error {
	tx, err := cat.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin seed")
	}
	defer tx.Rollback()

	for i, cert := range c.Certifications {
		skills, err := json.Marshal(cert.Skills)
		if err != nil {
			return errors.Wrapf(err, "encode skills of certification %d", i)
		}
		_, err = tx.Exec(`
			INSERT INTO certifications (position, title, issuer, date, description, skills_json, image_path)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, i, cert.Title, cert.Issuer, cert.Date, cert.Description, string(skills), cert.ImagePath)
		if err != nil {
			return errors.Wrapf(err, "insert certification %d", i)
		}
	}

	for i, p := range c.Projects {
		features, err := json.Marshal(p.Features)
		if err != nil {
			return errors.Wrapf(err, "encode features of project %s", p.ID)
		}
		photos, err := json.Marshal(p.Photos)
		if err != nil {
			return errors.Wrapf(err, "encode photos of project %s", p.ID)
		}
		_, err = tx.Exec(`
			INSERT INTO projects (id, position, title, short_description, description, features_json, github_url, report_url, photos_json, enquiry)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, i, p.Title, p.ShortDescription, p.Description, string(features), p.GithubURL, p.ReportURL, string(photos), p.Enquiry)
		if err != nil {
			return errors.Wrapf(err, "insert project %s", p.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit seed")
	}
	cat.count = len(c.Certifications)
	return nil
}

// Close releases the database.
func (cat *Catalog) Close() error {
	return cat.db.Close()
}

// CertificationCount is the number of certifications, fixed after Open.
func (cat *Catalog) CertificationCount() int {
	return cat.count
}

// Certification returns the record at display position i.
func (cat *Catalog) Certification(i int) (content.Certification, error) {
	row := cat.db.QueryRow(`
		SELECT title, issuer, date, description, skills_json, image_path
		FROM certifications WHERE position = ?
	`, i)
	cert, err := scanCertification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cert, errors.Wrapf(ErrNotFound, "certification %d", i)
	}
	return cert, err
}

// Certifications returns every record in display order.
func (cat *Catalog) Certifications() ([]content.Certification, error) {
	rows, err := cat.db.Query(`
		SELECT title, issuer, date, description, skills_json, image_path
		FROM certifications ORDER BY position
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query certifications")
	}
	defer rows.Close()

	var certs []content.Certification
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, errors.Wrap(rows.Err(), "iterate certifications")
}

// Project returns the project with the given id.
func (cat *Catalog) Project(id string) (content.Project, error) {
	row := cat.db.QueryRow(`
		SELECT id, title, short_description, description, features_json, github_url, report_url, photos_json, enquiry
		FROM projects WHERE id = ?
	`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, errors.Wrapf(ErrNotFound, "project %q", id)
	}
	return p, err
}

// Projects returns every project in display order.
func (cat *Catalog) Projects() ([]content.Project, error) {
	rows, err := cat.db.Query(`
		SELECT id, title, short_description, description, features_json, github_url, report_url, photos_json, enquiry
		FROM projects ORDER BY position
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query projects")
	}
	defer rows.Close()

	var projects []content.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, errors.Wrap(rows.Err(), "iterate projects")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCertification(s scanner) (content.Certification, error) {
	var cert content.Certification
	var skills string
	if err := s.Scan(&cert.Title, &cert.Issuer, &cert.Date, &cert.Description, &skills, &cert.ImagePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cert, err
		}
		return cert, errors.Wrap(err, "scan certification")
	}
	if err := json.Unmarshal([]byte(skills), &cert.Skills); err != nil {
		return cert, errors.Wrap(err, "decode certification skills")
	}
	return cert, nil
}

func scanProject(s scanner) (content.Project, error) {
	var p content.Project
	var features, photos string
	err := s.Scan(&p.ID, &p.Title, &p.ShortDescription, &p.Description, &features, &p.GithubURL, &p.ReportURL, &photos, &p.Enquiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, errors.Wrap(err, "scan project")
	}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return p, errors.Wrap(err, "decode project features")
	}
	if err := json.Unmarshal([]byte(photos), &p.Photos); err != nil {
		return p, errors.Wrap(err, "decode project photos")
	}
	return p, nil
}
