package matching

import "strings"

// StatusFromFlagged converts a flagged event into the status it reports.
func StatusFromFlagged(ev FlaggedEvent) Status {
	status := normalizeResolution(ev.ResolutionStatus)

	var teams *string
	if ev.TranslatedHomeTeam != "" && ev.TranslatedAwayTeam != "" {
		v := ev.TranslatedHomeTeam + " vs " + ev.TranslatedAwayTeam
		teams = &v
	}

	message := strings.TrimSpace(ev.FlagReason)
	if message == "" {
		message = DefaultMessage(status)
	}

	return Status{
		GameID:           ev.GameID,
		Status:           status,
		TranslatedTeams:  teams,
		TranslatedSport:  optionalString(ev.TranslatedSport),
		TranslatedLeague: optionalString(ev.TranslatedLeague),
		MissingElements:  ev.MissingElements,
		Message:          message,
		Source:           SourceFlaggedEvents,
	}
}

func NotProcessed(gameID string) Status {
	return Status{
		GameID:  gameID,
		Status:  StatusNotProcessed,
		Message: DefaultMessage(StatusNotProcessed),
		Source:  SourceNewGame,
	}
}

func APIError(gameID string, err error) Status {
	msg := "unknown error"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	return Status{
		GameID:  gameID,
		Status:  StatusAPIError,
		Message: DefaultMessage(StatusAPIError),
		Error:   msg,
		Source:  SourceMatchingAPI,
	}
}

func Unknown(gameID string) Status {
	return Status{
		GameID:  gameID,
		Status:  StatusUnknown,
		Message: DefaultMessage(StatusUnknown),
	}
}

func ExistsInOmenizer(gameID, eventID, teams string) Status {
	out := Status{
		GameID:          gameID,
		Status:          StatusExistsInOmenizer,
		OmenizerEventID: &eventID,
		Message:         DefaultMessage(StatusExistsInOmenizer),
		Source:          SourceOmenizer,
	}
	if strings.TrimSpace(teams) != "" {
		out.TranslatedTeams = &teams
	}
	return out
}

func DefaultMessage(status string) string {
	switch status {
	case StatusReadyForCreation:
		return "Complete translation - ready to create in Omenizer"
	case StatusPending:
		return "Partial translation - requires manual review"
	case StatusExistsInOmenizer:
		return "Already exists in Omenizer"
	case StatusNotProcessed:
		return "Not yet processed by matching engine"
	case StatusAPIError:
		return "API unavailable"
	default:
		return "Status unknown"
	}
}

// IsKnownStatus reports whether status belongs to the closed status set.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusReadyForCreation, StatusPending, StatusExistsInOmenizer,
		StatusNotProcessed, StatusAPIError, StatusUnknown:
		return true
	default:
		return false
	}
}

// Sanitize forces a status received from outside into the closed set.
func Sanitize(gameID string, s Status) Status {
	if s.GameID == "" {
		s.GameID = gameID
	}
	if !IsKnownStatus(s.Status) {
		s.Status = normalizeResolution(s.Status)
	}
	if strings.TrimSpace(s.Message) == "" {
		s.Message = DefaultMessage(s.Status)
	}
	return s
}

func normalizeResolution(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusReadyForCreation, "ready_for_api_creation":
		return StatusReadyForCreation
	case StatusPending, "unmatched":
		return StatusPending
	case StatusExistsInOmenizer, "already_exists":
		return StatusExistsInOmenizer
	case StatusNotProcessed:
		return StatusNotProcessed
	case StatusAPIError:
		return StatusAPIError
	default:
		return StatusUnknown
	}
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
