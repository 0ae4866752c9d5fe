package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

type sqliteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite catalog repository
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// NewSQLite creates a SQLite-backed catalog repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &sqliteRepository{db: cfg.DB}, nil
}

func (r *sqliteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, description FROM character_status_types ORDER BY name`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query status types")
	}
	defer rows.Close()

	var types []entities.StatusType
	for rows.Next() {
		var st entities.StatusType
		if err := rows.Scan(&st.ID, &st.Name, &st.Color, &st.Description); err != nil {
			return nil, errors.Wrapf(err, "failed to scan status type")
		}
		types = append(types, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read status types")
	}

	return &ListOutput{StatusTypes: types}, nil
}

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	st := input.StatusType
	if st == nil {
		return nil, errors.InvalidArgument("status type cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", st.ID, vb)
	errors.ValidateRequired("name", st.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if st.Color == "" {
		st.Color = entities.UnknownStatusColor
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO character_status_types (id, name, color, description) VALUES (?, ?, ?, ?)`,
		st.ID, st.Name, st.Color, st.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("status type with ID %s already exists", st.ID)
		}
		return nil, errors.Wrapf(err, "failed to insert status type")
	}

	return &CreateOutput{StatusType: st}, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
