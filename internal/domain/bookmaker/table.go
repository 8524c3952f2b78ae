package bookmaker

// UnknownID is returned for names that match no known bookmaker.
const UnknownID = "17a7de9a-c23b-49eb-9816-93ebc3bba1c5"

const (
	idDraftKings = "fe6bc0f8-e8a9-4083-9401-766d30817009"
	idFanDuel    = "d0f4c753-b2a3-4f02-ace3-f23d6987184a"
	idBetMGM     = "a4fb81f8-ba8c-4012-bd74-10f78846d6ea"
	idBetRivers  = "d543b534-8a9c-403c-bcbf-ab64a9cb6767"
	idFanatics   = "52c379c7-d293-448b-bb0e-3d97235e5973"
	idBovada     = "5d096137-fba9-45bd-bbad-6865d86f6582"
	idBetOnline  = "caf5646d-678b-4935-a86f-0cbc4a74f6df"
	idMyBookie   = "c1ad3b2d-166d-4f5e-9528-ff42e8137241"
	idBetUS      = "de5429d4-3158-448d-9cd6-e94f828b45c3"
	idBet365     = "ce996a90-c4bf-40b3-803f-daffe6c19b4f"
	idPinnacle   = "41a3c468-e086-4dd5-883a-d740d802c629"
)

// Entry is one row of the bookmaker identifier table.
type Entry struct {
	Name string `yaml:"name" json:"name"`
	ID   string `yaml:"id" json:"id"`
}

// DefaultTable returns the built-in bookmaker table in a stable order.
func DefaultTable() []Entry {
	return []Entry{
		{Name: "DraftKings", ID: idDraftKings},
		{Name: "FanDuel", ID: idFanDuel},
		{Name: "BetMGM", ID: idBetMGM},
		{Name: "BetRivers", ID: idBetRivers},
		{Name: "Fanatics", ID: idFanatics},
		{Name: "Bovada", ID: idBovada},
		{Name: "BetOnline.ag", ID: idBetOnline},
		{Name: "MyBookie.ag", ID: idMyBookie},
		{Name: "BetUS", ID: idBetUS},
		{Name: "LowVig.ag", ID: "f6848e0e-03a2-4784-a731-39549631f77e"},
		{Name: "bet365", ID: idBet365},
		{Name: "bet365.de", ID: "39f3c2ae-b7aa-4a14-98df-0b936556e683"},
		{Name: "pinnacle", ID: idPinnacle},
		{Name: "betway", ID: "834c26c6-1eed-48f7-afc3-22f3b2518809"},
		{Name: "bwin", ID: "75976014-7243-4b15-906d-c72e3a65b638"},
		{Name: "bwin.de", ID: "911c7dfd-eabf-4161-8ab3-b64dd7920855"},
		{Name: "bwin.es", ID: "4bc6d0d5-4237-45c5-8839-9acee4b963e2"},
		{Name: "bwin.fr", ID: "fca09a68-76ce-480d-9665-84de7be63d51"},
		{Name: "bwin.it", ID: "b7f8b77b-7d78-4c7c-8835-4926b6897ff6"},
		{Name: "bwin.pt", ID: "119abab6-ca30-4829-b7cd-13259fe000f9"},
		{Name: "unibet", ID: "5e02c81a-c435-442f-bd6e-c42cd73383d5"},
		{Name: "unibet.com.au", ID: "29db14b0-00bf-4173-8128-40659fda0691"},
		{Name: "unibet.co.uk", ID: "4931d85d-90a9-46fc-8c84-b9cc0355032c"},
		{Name: "unibet.dk", ID: "2e8d9d72-3d21-472a-99d0-c23124494729"},
		{Name: "unibet.fr", ID: "6ffe081e-e196-44ec-ac67-630c8256cd37"},
		{Name: "unibet.it", ID: "9a59d23a-c3e6-45e6-857a-7e944bd4661a"},
		{Name: "unibet.nl", ID: "0cd7ccd5-b5ec-49e3-8a02-8624fc6e838b"},
		{Name: "unibet.se", ID: "28098d89-097d-4349-9e52-dcf47619f27b"},
		{Name: "betano", ID: "038dac19-98af-47aa-87e1-a1597ae5176e"},
		{Name: "betsson", ID: "6381430b-fbbe-415f-be0a-f424e99900f2"},
		{Name: "leovegas", ID: "79be5d8d-6bae-4915-9e52-dbcbe2696669"},
		{Name: "888sport", ID: "d52aec0b-069d-46cc-8a80-16ce20cec489"},
		{Name: "paddy power", ID: "a5b8c855-6063-419f-98dd-87236b932629"},
		{Name: "ladbrokes", ID: "ef8c7868-2f37-45a7-b20b-e76d0f99a421"},
		{Name: "betfair-ex", ID: "3ff7931d-210a-435d-b1d8-bb8a0c0530e2"},
		{Name: "1xbet", ID: "9d8d5f66-2a8c-4da1-9143-cf9dd557b50b"},
		{Name: "22bet", ID: "bb9a1a51-3b1f-4ad8-867e-b51c3b9a3e49"},
		{Name: "stake", ID: "b36c6d2a-306e-48ae-9e6b-0fe8767e52db"},
	}
}

// DefaultAliases returns the substring alias rules in priority order.
func DefaultAliases() []Alias {
	return []Alias{
		{Contains: []string{"draftkings", "draft kings", "dk"}, ID: idDraftKings},
		{Contains: []string{"fanduel", "fan duel", "fd"}, ID: idFanDuel},
		{Contains: []string{"betmgm", "mgm"}, ID: idBetMGM},
		{Contains: []string{"bet365", "bet 365"}, ID: idBet365},
		{Contains: []string{"caesars"}, ID: idBetRivers},
		{Contains: []string{"pointsbet"}, ID: idBetRivers},
		{Contains: []string{"barstool"}, ID: idFanatics},
		{Contains: []string{"pinnacle"}, ID: idPinnacle},
		{Contains: []string{"bovada"}, ID: idBovada},
		{Contains: []string{"betonline"}, ID: idBetOnline},
		{Contains: []string{"mybookie"}, ID: idMyBookie},
		{Contains: []string{"betus"}, ID: idBetUS},
	}
}
