package roster

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/clock"
)

const (
	playerColumns = `id, campaign_id, character_name, player_name, class, level,
       hp_current, hp_max, armor_class, notes`
	npcColumns = `id, campaign_id, name, role, current_hp, max_hp, ac, description`

	errCampaignIDEmpty = "campaign ID cannot be empty"
)

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite roster repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
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

// NewSQLite creates a SQLite-backed roster repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{db: cfg.DB, clock: c}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*entities.Player, error) {
	var p entities.Player
	err := row.Scan(&p.ID, &p.CampaignID, &p.CharacterName, &p.PlayerName, &p.Class, &p.Level,
		&p.HPCurrent, &p.HPMax, &p.ArmorClass, &p.Notes)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanNPC(row scanner) (*entities.NPC, error) {
	var n entities.NPC
	err := row.Scan(&n.ID, &n.CampaignID, &n.Name, &n.Role, &n.CurrentHP, &n.MaxHP, &n.AC, &n.Description)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *sqliteRepository) ListPlayers(ctx context.Context, input ListPlayersInput) (*ListPlayersOutput, error) {
	if input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE campaign_id = ? ORDER BY character_name`,
		input.CampaignID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query players")
	}
	defer rows.Close()

	players := []*entities.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan player")
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read players")
	}

	return &ListPlayersOutput{Players: players}, nil
}

func (r *sqliteRepository) ListNPCs(ctx context.Context, input ListNPCsInput) (*ListNPCsOutput, error) {
	if input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+npcColumns+` FROM npcs WHERE campaign_id = ? ORDER BY name`,
		input.CampaignID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query npcs")
	}
	defer rows.Close()

	npcs := []*entities.NPC{}
	for rows.Next() {
		n, err := scanNPC(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan npc")
		}
		npcs = append(npcs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read npcs")
	}

	return &ListNPCsOutput{NPCs: npcs}, nil
}

func (r *sqliteRepository) GetPlayer(ctx context.Context, input GetPlayerInput) (*GetPlayerOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	p, err := scanPlayer(r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, input.ID))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("player with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get player")
	}

	return &GetPlayerOutput{Player: p}, nil
}

func (r *sqliteRepository) GetNPC(ctx context.Context, input GetNPCInput) (*GetNPCOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("npc ID cannot be empty")
	}

	n, err := scanNPC(r.db.QueryRowContext(ctx,
		`SELECT `+npcColumns+` FROM npcs WHERE id = ?`, input.ID))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("npc with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get npc")
	}

	return &GetNPCOutput{NPC: n}, nil
}

func (r *sqliteRepository) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*CreatePlayerOutput, error) {
	p := input.Player
	if p == nil {
		return nil, errors.InvalidArgument("player cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", p.ID, vb)
	errors.ValidateRequired("campaign_id", p.CampaignID, vb)
	errors.ValidateRequired("character_name", p.CharacterName, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (`+playerColumns+`, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CampaignID, p.CharacterName, p.PlayerName, p.Class, p.Level,
		p.HPCurrent, p.HPMax, p.ArmorClass, p.Notes, r.now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("player with ID %s already exists", p.ID)
		}
		return nil, errors.Wrapf(err, "failed to insert player")
	}

	return &CreatePlayerOutput{Player: p}, nil
}

func (r *sqliteRepository) CreateNPC(ctx context.Context, input CreateNPCInput) (*CreateNPCOutput, error) {
	n := input.NPC
	if n == nil {
		return nil, errors.InvalidArgument("npc cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", n.ID, vb)
	errors.ValidateRequired("campaign_id", n.CampaignID, vb)
	errors.ValidateRequired("name", n.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO npcs (`+npcColumns+`, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.CampaignID, n.Name, n.Role, n.CurrentHP, n.MaxHP, n.AC, n.Description, r.now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("npc with ID %s already exists", n.ID)
		}
		return nil, errors.Wrapf(err, "failed to insert npc")
	}

	return &CreateNPCOutput{NPC: n}, nil
}

func (r *sqliteRepository) now() int64 {
	return r.clock.Now().Truncate(time.Second).Unix()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
