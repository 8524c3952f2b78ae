package memory

import (
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
)

const (
	GameIDCubsAngels     = "mlb-cubs-angels-20250806"
	GameIDYankeesRedSox  = "mlb-yankees-redsox-20250807"
	GameIDArsenalChelsea = "epl-arsenal-chelsea-20250816"
)

func SeedGames() []odds.Game {
	cubsStart := time.Date(2025, 8, 6, 18, 20, 0, 0, time.UTC)
	yankeesStart := time.Date(2025, 8, 7, 23, 5, 0, 0, time.UTC)

	return []odds.Game{
		{
			ID:              GameIDCubsAngels,
			HomeTeam:        "Chicago Cubs",
			AwayTeam:        "Los Angeles Angels",
			League:          "MLB",
			Sport:           "Baseball",
			Status:          odds.StatusScheduled,
			BetType:         "Moneyline",
			StartTime:       "Wed, Aug 6 at 6:20 PM",
			StartTimeParsed: &cubsStart,
			CreatedAt:       time.Date(2025, 8, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:              GameIDYankeesRedSox,
			HomeTeam:        "New York Yankees",
			AwayTeam:        "Boston Red Sox",
			League:          "MLB",
			Sport:           "Baseball",
			Status:          odds.StatusLive,
			BetType:         "Moneyline",
			StartTime:       "Thu, Aug 7 at 7:05 PM",
			StartTimeParsed: &yankeesStart,
			CreatedAt:       time.Date(2025, 8, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        GameIDArsenalChelsea,
			HomeTeam:  "Arsenal",
			AwayTeam:  "Chelsea",
			League:    "Premier League",
			Sport:     "Soccer",
			Status:    odds.StatusScheduled,
			BetType:   "1X2",
			StartTime: "Sat, Aug 16 at 12:30 PM",
			CreatedAt: time.Date(2025, 8, 8, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedOdds() []odds.RawOddsRow {
	ts := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	return []odds.RawOddsRow{
		seedRow(GameIDCubsAngels, "DraftKings", -150, 130, nil, ts),
		seedRow(GameIDCubsAngels, "FanDuel", -145, 125, nil, ts.Add(time.Minute)),
		seedRow(GameIDYankeesRedSox, "BetMGM", -120, 100, nil, ts.Add(24*time.Hour)),
		seedRow(GameIDYankeesRedSox, "Caesars Sportsbook", -118, -102, nil, ts.Add(24*time.Hour)),
	}
}

func SeedFlaggedEvents() []matching.FlaggedEvent {
	created := time.Date(2025, 8, 6, 10, 0, 0, 0, time.UTC)
	return []matching.FlaggedEvent{
		{
			ID:                 1,
			GameID:             GameIDArsenalChelsea,
			HomeTeam:           "Arsenal",
			AwayTeam:           "Chelsea",
			Sport:              "Soccer",
			League:             "Premier League",
			FlagReason:         "League not found in reference data",
			ResolutionStatus:   "unmatched",
			TranslatedSport:    "Football",
			TranslatedHomeTeam: "Arsenal FC",
			TranslatedAwayTeam: "Chelsea FC",
			MissingElements:    []string{"league"},
			CreatedAt:          created,
			UpdatedAt:          created,
		},
	}
}

func seedRow(gameID, book string, home, away int, draw *int, ts time.Time) odds.RawOddsRow {
	return odds.RawOddsRow{
		GameID:     gameID,
		Bookmaker:  book,
		MarketType: "Moneyline",
		HomeOdds:   &home,
		AwayOdds:   &away,
		DrawOdds:   draw,
		Format:     "american",
		Timestamp:  ts,
		CreatedAt:  ts,
	}
}
