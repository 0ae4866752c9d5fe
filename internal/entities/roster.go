package entities

// Player is a player character sheet as stored in the campaign database
type Player struct {
	ID            string
	CampaignID    string
	CharacterName string
	PlayerName    string
	Class         string
	Level         int32
	HPCurrent     int32
	HPMax         int32
	ArmorClass    int32
	Notes         string
}

// NPC is a non-player character as stored in the campaign database
type NPC struct {
	ID          string
	CampaignID  string
	Name        string
	Role        string
	CurrentHP   int32
	MaxHP       int32
	AC          int32
	Description string
}

// RosterEntry is the kind-independent view of a Player or NPC used to
// instantiate combatants
type RosterEntry struct {
	ID         string        `json:"id"`
	Kind       CharacterType `json:"kind"`
	Name       string        `json:"name"`
	CurrentHP  int32         `json:"current_hp"`
	MaxHP      int32         `json:"max_hp"`
	ArmorClass int32         `json:"armor_class"`
	Notes      string        `json:"notes,omitempty"`
}
