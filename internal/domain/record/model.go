package record

const (
	OutcomeHome = "Home"
	OutcomeAway = "Away"
	OutcomeDraw = "Draw"

	PriceFormatDecimal = "decimal"
)

// CanonicalRecord is the unit delivered to the ingestion API.
type CanonicalRecord struct {
	SourceID      string          `json:"source_id"`
	EventSource   string          `json:"event_source"`
	Name          string          `json:"name"`
	HomeTeam      string          `json:"home_team"`
	AwayTeam      string          `json:"away_team"`
	EventDatetime string          `json:"event_datetime"`
	League        string          `json:"league"`
	Sport         string          `json:"sport"`
	Status        string          `json:"status"`
	Markets       *MarketsSummary `json:"markets"`
}

// MarketsSummary aggregates every market group of one event.
type MarketsSummary struct {
	Markets        []MarketGroup `json:"markets"`
	Bookmakers     []string      `json:"bookmakers"`
	MarketTypes    []string      `json:"market_types"`
	TotalMarkets   int           `json:"total_markets"`
	BookmakerCount int           `json:"bookmaker_count"`
}

// MarketGroup is one bookmaker's prices for one bet type.
type MarketGroup struct {
	Bookmaker   string    `json:"bookmaker"`
	MarketType  string    `json:"market_type"`
	IsLive      bool      `json:"is_live"`
	LastUpdated string    `json:"last_updated"`
	Odds        []Outcome `json:"odds"`
}

type Outcome struct {
	Outcome       string   `json:"outcome"`
	OutcomeTeam   string   `json:"outcome_team"`
	AmericanPrice int      `json:"american_price"`
	Price         float64  `json:"price"`
	Format        string   `json:"format"`
	Bookmaker     string   `json:"bookmaker"`
	Probability   *float64 `json:"probability"`
}

func (r CanonicalRecord) OutcomeCount() int {
	if r.Markets == nil {
		return 0
	}
	total := 0
	for _, group := range r.Markets.Markets {
		total += len(group.Odds)
	}
	return total
}
