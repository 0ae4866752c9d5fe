package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-initiative/internal/sqlite"
)

var seedCampaign string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the campaign database with a starter catalog and roster",
	Long: `Create the SQLite campaign database if needed and insert the standard
condition catalog plus a small party and a few stock NPCs for --campaign.
Rows that already exist are left alone, so seeding twice is harmless.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCampaign, "campaign", "demo", "campaign ID for seeded players and NPCs")
	seedCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "campaign database path (overrides RPG_INITIATIVE_SQLITE_PATH)")
}

var seedStatusTypes = []entities.StatusType{
	{ID: "st_blinded", Name: "Blinded", Color: "gray", Description: "Can't see; attacks against have advantage"},
	{ID: "st_charmed", Name: "Charmed", Color: "pink", Description: "Can't attack the charmer"},
	{ID: "st_frightened", Name: "Frightened", Color: "purple", Description: "Disadvantage while the source is in sight"},
	{ID: "st_grappled", Name: "Grappled", Color: "brown", Description: "Speed becomes 0"},
	{ID: "st_paralyzed", Name: "Paralyzed", Color: "yellow", Description: "Incapacitated; can't move or speak"},
	{ID: "st_poisoned", Name: "Poisoned", Color: "green", Description: "Disadvantage on attacks and ability checks"},
	{ID: "st_prone", Name: "Prone", Color: "orange", Description: "Lying on the ground"},
	{ID: "st_restrained", Name: "Restrained", Color: "red", Description: "Speed 0; disadvantage on attacks"},
	{ID: "st_stunned", Name: "Stunned", Color: "blue", Description: "Incapacitated; fails Str and Dex saves"},
	{ID: "st_unconscious", Name: "Unconscious", Color: "black", Description: "Unaware of surroundings; drops what it holds"},
}

func seedPlayers(campaignID string) []*entities.Player {
	return []*entities.Player{
		{ID: campaignID + "_pc_aria", CampaignID: campaignID, CharacterName: "Aria", PlayerName: "Sam", Class: "Ranger", Level: 3, HPCurrent: 24, HPMax: 24, ArmorClass: 15},
		{ID: campaignID + "_pc_borin", CampaignID: campaignID, CharacterName: "Borin", PlayerName: "Alex", Class: "Cleric", Level: 3, HPCurrent: 27, HPMax: 27, ArmorClass: 18},
		{ID: campaignID + "_pc_vex", CampaignID: campaignID, CharacterName: "Vex", PlayerName: "Jordan", Class: "Wizard", Level: 3, HPCurrent: 16, HPMax: 16, ArmorClass: 12, Notes: "Mage armor not included"},
	}
}

func seedNPCs(campaignID string) []*entities.NPC {
	return []*entities.NPC{
		{ID: campaignID + "_npc_goblin", CampaignID: campaignID, Name: "Goblin", Role: "minion", CurrentHP: 7, MaxHP: 7, AC: 15, Description: "Nimble Escape"},
		{ID: campaignID + "_npc_orc", CampaignID: campaignID, Name: "Orc", Role: "brute", CurrentHP: 15, MaxHP: 15, AC: 13, Description: "Aggressive"},
		{ID: campaignID + "_npc_bugbear", CampaignID: campaignID, Name: "Bugbear Chief", Role: "boss", CurrentHP: 65, MaxHP: 65, AC: 17},
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(cfg.Logger())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	catalogRepo, err := catalog.NewSQLite(&catalog.SQLiteConfig{DB: db})
	if err != nil {
		return err
	}
	rosterRepo, err := roster.NewSQLite(&roster.SQLiteConfig{DB: db})
	if err != nil {
		return err
	}

	var created, skipped int
	count := func(err error) error {
		switch {
		case err == nil:
			created++
		case errors.IsAlreadyExists(err):
			skipped++
		default:
			return err
		}
		return nil
	}

	for i := range seedStatusTypes {
		st := seedStatusTypes[i]
		_, err := catalogRepo.Create(ctx, catalog.CreateInput{StatusType: &st})
		if err := count(err); err != nil {
			return fmt.Errorf("failed to seed status %s: %w", st.Name, err)
		}
	}
	for _, p := range seedPlayers(seedCampaign) {
		_, err := rosterRepo.CreatePlayer(ctx, roster.CreatePlayerInput{Player: p})
		if err := count(err); err != nil {
			return fmt.Errorf("failed to seed player %s: %w", p.CharacterName, err)
		}
	}
	for _, n := range seedNPCs(seedCampaign) {
		_, err := rosterRepo.CreateNPC(ctx, roster.CreateNPCInput{NPC: n})
		if err := count(err); err != nil {
			return fmt.Errorf("failed to seed npc %s: %w", n.Name, err)
		}
	}

	slog.InfoContext(ctx, "seed complete", "path", cfg.SQLitePath, "campaign", seedCampaign, "created", created, "skipped", skipped)
	fmt.Printf("Seeded %s: %d rows created, %d already present\n", cfg.SQLitePath, created, skipped)
	return nil
}
