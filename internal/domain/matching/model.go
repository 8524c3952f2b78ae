package matching

import (
	"context"
	"time"
)

const (
	StatusReadyForCreation = "ready_for_creation"
	StatusPending          = "pending"
	StatusExistsInOmenizer = "exists_in_omenizer"
	StatusNotProcessed     = "not_processed"
	StatusAPIError         = "api_error"
	StatusUnknown          = "unknown"

	ResolutionResolved = "resolved"

	SourceFlaggedEvents = "flagged_events"
	SourceOmenizer      = "omenizer"
	SourceNewGame       = "new_game"
	SourceMatchingAPI   = "matching_api"
)

// Status is the reconciliation state of one game.
type Status struct {
	GameID           string   `json:"game_id"`
	Status           string   `json:"status"`
	OmenizerEventID  *string  `json:"omenizer_event_id"`
	TranslatedTeams  *string  `json:"translated_teams"`
	TranslatedSport  *string  `json:"translated_sport"`
	TranslatedLeague *string  `json:"translated_league"`
	MissingElements  []string `json:"missing_elements"`
	Message          string   `json:"message"`
	Error            string   `json:"error,omitempty"`
	Source           string   `json:"source,omitempty"`
}

// Lookup is a keyed status lookup. found=false means the source has no entry.
type Lookup interface {
	Lookup(ctx context.Context, gameID string) (Status, bool, error)
}

// BatchLookup resolves many game ids in one call.
type BatchLookup interface {
	LookupMany(ctx context.Context, gameIDs []string) (map[string]Status, error)
}

// FlaggedEvent is a game marked for reconciliation review.
type FlaggedEvent struct {
	ID                 int64      `json:"id"`
	GameID             string     `json:"game_id"`
	HomeTeam           string     `json:"home_team"`
	AwayTeam           string     `json:"away_team"`
	Sport              string     `json:"sport"`
	League             string     `json:"league"`
	EventDatetime      *time.Time `json:"event_datetime"`
	FlagReason         string     `json:"flag_reason"`
	ResolutionStatus   string     `json:"resolution_status"`
	TranslatedSport    string     `json:"translated_sport"`
	TranslatedLeague   string     `json:"translated_league"`
	TranslatedHomeTeam string     `json:"translated_home_team"`
	TranslatedAwayTeam string     `json:"translated_away_team"`
	MissingElements    []string   `json:"missing_elements"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// FlaggedEventFilter narrows FlaggedEventRepository.List.
type FlaggedEventFilter struct {
	ResolutionStatus string
	Limit            int
}

// FlaggedEventRepository backs the flagged event index and its admin surface.
type FlaggedEventRepository interface {
	Lookup
	List(ctx context.Context, filter FlaggedEventFilter) ([]FlaggedEvent, error)
	CountByResolution(ctx context.Context) (map[string]int, error)
	MarkResolved(ctx context.Context, gameID string) (bool, error)
	// Upsert inserts ev or refreshes the flag already stored for ev.GameID.
	// CreatedAt of an existing flag is preserved.
	Upsert(ctx context.Context, ev FlaggedEvent) error
}
