package combatants

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-initiative/internal/redis"
)

const (
	combatantKeyPrefix  = "combatant:"
	campaignIndexPrefix = "combatant:campaign:"
	statusKeyPrefix     = "combatant_status:"
	statusIndexPrefix   = "combatant_status:combatant:"

	// sequenceKey scores index members so equal sort keys come back in
	// insertion order
	sequenceKey = "combatant:seq"

	// Error messages
	errCombatantNil      = "combatant cannot be nil"
	errCombatantIDEmpty  = "combatant ID cannot be empty"
	errCampaignIDEmpty   = "campaign ID cannot be empty"
	errAnnotationNil     = "annotation cannot be nil"
	errAnnotationIDEmpty = "annotation ID cannot be empty"
	errStatusTypeEmpty   = "status type ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis combatant repositories
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed combatant repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	return newRedis(cfg)
}

// NewRedisStatus creates a Redis-backed status annotation repository
func NewRedisStatus(cfg *RedisConfig) (StatusRepository, error) {
	r, err := newRedis(cfg)
	if err != nil {
		return nil, err
	}
	return &redisStatusRepository{redisRepository: r}, nil
}

func newRedis(cfg *RedisConfig) (*redisRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) ListByCampaign(
	ctx context.Context,
	input ListByCampaignInput,
) (*ListByCampaignOutput, error) {
	if input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	indexKey := campaignIndexPrefix + input.CampaignID
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read campaign index %s", indexKey)
	}

	combatants := make([]*entities.Combatant, 0, len(ids))
	if len(ids) == 0 {
		return &ListByCampaignOutput{Combatants: combatants}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = combatantKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load combatants for campaign %s", input.CampaignID)
	}

	var stale []interface{}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var c entities.Combatant
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal combatant %s", ids[i])
		}
		combatants = append(combatants, &c)
	}

	if len(stale) > 0 {
		slog.WarnContext(ctx, "combatant index references missing rows, cleaning up",
			"campaign_id", input.CampaignID,
			"stale_count", len(stale))
		r.client.ZRem(ctx, indexKey, stale...)
	}

	entities.SortForDisplay(combatants)

	slog.DebugContext(ctx, "listed combatants",
		"campaign_id", input.CampaignID,
		"count", len(combatants))

	return &ListByCampaignOutput{Combatants: combatants}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if len(input.Combatants) == 0 {
		return nil, errors.InvalidArgument("at least one combatant is required")
	}

	keys := make([]string, len(input.Combatants))
	for i, c := range input.Combatants {
		if err := validateCombatant(c); err != nil {
			return nil, err
		}
		keys[i] = combatantKeyPrefix + c.ID
	}

	exists, err := r.client.Exists(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("%d of %d combatant IDs already exist", exists, len(keys))
	}

	count := int64(len(input.Combatants))
	last, err := r.client.IncrBy(ctx, sequenceKey, count).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reserve sequence")
	}
	first := last - count + 1

	now := r.clock.Now()
	pipe := r.client.TxPipeline()
	for i, c := range input.Combatants {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		data, err := json.Marshal(c)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal combatant %s", c.ID)
		}
		pipe.Set(ctx, keys[i], data, 0)
		pipe.ZAdd(ctx, campaignIndexPrefix+c.CampaignID, redis.Z{
			Score:  float64(first + int64(i)),
			Member: c.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create combatants")
	}

	return &CreateOutput{Combatants: input.Combatants}, nil
}

func (r *redisRepository) UpdateHP(ctx context.Context, input UpdateHPInput) (*UpdateHPOutput, error) {
	c, err := r.mutate(ctx, input.ID, func(c *entities.Combatant) {
		c.CurrentHP = input.CurrentHP
	})
	if err != nil {
		return nil, err
	}
	return &UpdateHPOutput{Combatant: c}, nil
}

func (r *redisRepository) UpdateInitiative(
	ctx context.Context,
	input UpdateInitiativeInput,
) (*UpdateInitiativeOutput, error) {
	c, err := r.mutate(ctx, input.ID, func(c *entities.Combatant) {
		c.InitiativeValue = input.InitiativeValue
	})
	if err != nil {
		return nil, err
	}
	return &UpdateInitiativeOutput{Combatant: c}, nil
}

func (r *redisRepository) UpdatePosition(
	ctx context.Context,
	input UpdatePositionInput,
) (*UpdatePositionOutput, error) {
	if _, err := r.mutate(ctx, input.ID, func(c *entities.Combatant) {
		c.Position = input.Position
	}); err != nil {
		return nil, err
	}
	return &UpdatePositionOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	c, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	statusIndex := statusIndexPrefix + c.ID
	statusIDs, err := r.client.ZRange(ctx, statusIndex, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read status index for %s", c.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, combatantKeyPrefix+c.ID)
	pipe.ZRem(ctx, campaignIndexPrefix+c.CampaignID, c.ID)
	for _, id := range statusIDs {
		pipe.Del(ctx, statusKeyPrefix+id)
	}
	pipe.Del(ctx, statusIndex)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete combatant %s", c.ID)
	}

	slog.DebugContext(ctx, "deleted combatant",
		"combatant_id", c.ID,
		"statuses_deleted", len(statusIDs))

	return &DeleteOutput{StatusesDeleted: len(statusIDs)}, nil
}

func (r *redisRepository) get(ctx context.Context, id string) (*entities.Combatant, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	result, err := r.client.Get(ctx, combatantKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("combatant with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get combatant")
	}

	var c entities.Combatant
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal combatant data")
	}
	return &c, nil
}

// mutate applies fn to one stored combatant under WATCH so concurrent writers
// to the same row do not lose updates
func (r *redisRepository) mutate(
	ctx context.Context,
	id string,
	fn func(*entities.Combatant),
) (*entities.Combatant, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	key := combatantKeyPrefix + id
	var updated entities.Combatant

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("combatant with ID %s not found", id)
			}
			return errors.Wrapf(err, "failed to get combatant")
		}

		if err := json.Unmarshal([]byte(result), &updated); err != nil {
			return errors.Wrapf(err, "failed to unmarshal combatant data")
		}
		fn(&updated)

		data, err := json.Marshal(&updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal combatant data")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update combatant %s", id)
	}

	return &updated, nil
}

func validateCombatant(c *entities.Combatant) error {
	if c == nil {
		return errors.InvalidArgument(errCombatantNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", c.ID, vb)
	errors.ValidateRequired("campaign_id", c.CampaignID, vb)
	errors.ValidateRequired("name", c.Name, vb)
	if !c.CharacterType.Valid() {
		vb.Fieldf("character_type", "must be %q or %q", entities.CharacterTypePlayer, entities.CharacterTypeNPC)
	}
	return vb.Build()
}

type redisStatusRepository struct {
	*redisRepository
}

func (r *redisStatusRepository) ListByCombatantIDs(
	ctx context.Context,
	input ListByCombatantIDsInput,
) (*ListByCombatantIDsOutput, error) {
	out := &ListByCombatantIDsOutput{Annotations: make(map[string][]*entities.StatusAnnotation)}
	if len(input.CombatantIDs) == 0 {
		return out, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(input.CombatantIDs))
	for i, id := range input.CombatantIDs {
		cmds[i] = pipe.ZRange(ctx, statusIndexPrefix+id, 0, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read status indexes")
	}

	var keys []string
	for _, cmd := range cmds {
		ids, err := cmd.Result()
		if err != nil && err != redis.Nil {
			return nil, errors.Wrapf(err, "failed to read status index")
		}
		for _, id := range ids {
			keys = append(keys, statusKeyPrefix+id)
		}
	}
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load status annotations")
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "status index references missing annotation", "key", keys[i])
			continue
		}
		var a entities.StatusAnnotation
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal annotation %s", keys[i])
		}
		out.Annotations[a.CombatantID] = append(out.Annotations[a.CombatantID], &a)
	}

	return out, nil
}

func (r *redisStatusRepository) Create(ctx context.Context, input CreateStatusInput) (*CreateStatusOutput, error) {
	a := input.Annotation
	if a == nil {
		return nil, errors.InvalidArgument(errAnnotationNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", a.ID, vb)
	errors.ValidateRequired("combatant_id", a.CombatantID, vb)
	if a.StatusTypeID == "" {
		vb.Field("status_type_id", errStatusTypeEmpty)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := r.get(ctx, a.CombatantID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal annotation")
	}

	seq, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reserve sequence")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, statusKeyPrefix+a.ID, data, 0)
	pipe.ZAdd(ctx, statusIndexPrefix+a.CombatantID, redis.Z{Score: float64(seq), Member: a.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create annotation")
	}

	return &CreateStatusOutput{Annotation: a}, nil
}

func (r *redisStatusRepository) Delete(ctx context.Context, input DeleteStatusInput) (*DeleteStatusOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAnnotationIDEmpty)
	}

	key := statusKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("status annotation with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get annotation")
	}

	var a entities.StatusAnnotation
	if err := json.Unmarshal([]byte(result), &a); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal annotation")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.ZRem(ctx, statusIndexPrefix+a.CombatantID, a.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete annotation")
	}

	return &DeleteStatusOutput{CombatantID: a.CombatantID}, nil
}
