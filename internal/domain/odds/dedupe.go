package odds

import "strings"

// DedupeGames keeps one game per id. The game with the latest CreatedAt wins;
// on equal CreatedAt the first encountered is kept. Each surviving game takes
// the position of the first occurrence of its id.
func DedupeGames(games []Game) []Game {
	if len(games) == 0 {
		return []Game{}
	}

	index := make(map[string]int, len(games))
	out := make([]Game, 0, len(games))
	for _, game := range games {
		pos, seen := index[game.ID]
		if !seen {
			index[game.ID] = len(out)
			out = append(out, game)
			continue
		}
		if game.CreatedAt.After(out[pos].CreatedAt) {
			out[pos] = game
		}
	}

	return out
}

// DedupeOdds keeps one row per (game id, bookmaker). Rows are ordered by
// Timestamp, then CreatedAt; the latest wins and ties keep the first encountered.
func DedupeOdds(rows []RawOddsRow) []RawOddsRow {
	if len(rows) == 0 {
		return []RawOddsRow{}
	}

	index := make(map[oddsKey]int, len(rows))
	out := make([]RawOddsRow, 0, len(rows))
	for _, row := range rows {
		key := oddsKey{gameID: row.GameID, bookmaker: strings.TrimSpace(row.Bookmaker)}
		pos, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, row)
			continue
		}
		if isNewerRow(row, out[pos]) {
			out[pos] = row
		}
	}

	return out
}

type oddsKey struct {
	gameID    string
	bookmaker string
}

func isNewerRow(candidate, current RawOddsRow) bool {
	if !candidate.Timestamp.Equal(current.Timestamp) {
		return candidate.Timestamp.After(current.Timestamp)
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}
