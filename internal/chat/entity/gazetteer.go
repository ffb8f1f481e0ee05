package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Place is a municipality found in the gazetteer.
type Place struct {
	Name     string
	Province string
	Region   string
	Exact    bool
}

// Gazetteer validates province names and resolves municipality phrases against
// the geographic reference tables.
type Gazetteer interface {
	// Province returns the stored province name matching name.
	Province(ctx context.Context, name string) (string, bool, error)
	// Municipality returns nil when nothing matches phrase.
	Municipality(ctx context.Context, phrase string) (*Place, error)
}

const provinceLookupSQL = `SELECT name FROM common_province
WHERE LOWER(name) = LOWER($1) OR name ILIKE $2
ORDER BY (LOWER(name) = LOWER($1)) DESC, name
LIMIT 1`

const municipalityLookupSQL = `SELECT m.name, p.name, r.name
FROM common_municipality m
JOIN common_province p ON p.id = m.province_id
JOIN common_region r ON r.id = p.region_id
WHERE LOWER(m.name) = LOWER($1) OR m.name ILIKE $2
ORDER BY (LOWER(m.name) = LOWER($1)) DESC, m.name
LIMIT 1`

type PostgresGazetteer struct {
	db *sql.DB
}

func NewPostgresGazetteer(db *sql.DB) *PostgresGazetteer {
	return &PostgresGazetteer{db: db}
}

func (g *PostgresGazetteer) Province(ctx context.Context, name string) (string, bool, error) {
	var stored string
	err := g.db.QueryRowContext(ctx, provinceLookupSQL, name, containsPattern(name)).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("province lookup %q: %w", name, err)
	}
	return stored, true, nil
}

func (g *PostgresGazetteer) Municipality(ctx context.Context, phrase string) (*Place, error) {
	var p Place
	err := g.db.QueryRowContext(ctx, municipalityLookupSQL, phrase, containsPattern(phrase)).
		Scan(&p.Name, &p.Province, &p.Region)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("municipality lookup %q: %w", phrase, err)
	}
	p.Exact = strings.EqualFold(p.Name, phrase)
	return &p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
