package onboarding

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository persists the configuration as a single row guarded by
// a CHECK (id = 1) constraint; the component lists live in jsonb columns.
type PostgresRepository struct {
	db *sql.DB
}

const (
	getConfigQuery = `
		SELECT doc_id, page2_components, page3_components, created_at, updated_at
		FROM onboarding_config
		WHERE id = 1
	`
	insertConfigQuery = `
		INSERT INTO onboarding_config (id, doc_id, page2_components, page3_components, created_at, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	updateConfigQuery = `
		UPDATE onboarding_config
		SET page2_components = $1,
			page3_components = $2,
			updated_at = $3
		WHERE id = 1
		RETURNING doc_id, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get() (Config, error) {
	var (
		cfg      Config
		page2Raw []byte
		page3Raw []byte
	)
	err := r.db.QueryRow(getConfigQuery).Scan(&cfg.ID, &page2Raw, &page3Raw, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}

	if err := json.Unmarshal(page2Raw, &cfg.Page2); err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(page3Raw, &cfg.Page3); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (r *PostgresRepository) Create(cfg Config) (Config, error) {
	page2Raw, page3Raw, err := marshalPages(cfg)
	if err != nil {
		return Config{}, err
	}

	res, err := r.db.Exec(insertConfigQuery, cfg.ID, page2Raw, page3Raw, cfg.CreatedAt, cfg.UpdatedAt)
	if err != nil {
		return Config{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// another writer created the document first; hand back theirs
		return r.Get()
	}
	return cfg, nil
}

func (r *PostgresRepository) Update(cfg Config) (Config, error) {
	page2Raw, page3Raw, err := marshalPages(cfg)
	if err != nil {
		return Config{}, err
	}

	err = r.db.QueryRow(updateConfigQuery, page2Raw, page3Raw, cfg.UpdatedAt).Scan(&cfg.ID, &cfg.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}
	return cfg, nil
}

func marshalPages(cfg Config) (page2Raw, page3Raw []byte, err error) {
	if page2Raw, err = json.Marshal(cfg.Page2); err != nil {
		return nil, nil, err
	}
	if page3Raw, err = json.Marshal(cfg.Page3); err != nil {
		return nil, nil, err
	}
	return page2Raw, page3Raw, nil
}
