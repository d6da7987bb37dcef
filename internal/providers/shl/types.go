package shl

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type gameResponse struct {
	GameID         int    `json:"game_id"`
	GameUUID       string `json:"game_uuid"`
	Season         int    `json:"season"`
	StartDateTime  string `json:"start_date_time"`
	HomeTeamCode   string `json:"home_team_code"`
	AwayTeamCode   string `json:"away_team_code"`
	HomeTeamResult int    `json:"home_team_result"`
	AwayTeamResult int    `json:"away_team_result"`
	Played         bool   `json:"played"`
}

// statsResponse is the game center payload. The "gameRecap" entry of Recaps is the
// whole-game summary; numeric keys hold per-period summaries.
type statsResponse struct {
	GameUUID     string                      `json:"game_uuid"`
	GameID       int                         `json:"game_id"`
	Status       string                      `json:"status"`
	Period       int                         `json:"period"`
	Gametime     string                      `json:"gametime"`
	HomeTeamCode string                      `json:"home_team_code"`
	AwayTeamCode string                      `json:"away_team_code"`
	HomeScore    int                         `json:"home_score"`
	AwayScore    int                         `json:"away_score"`
	Recaps       map[string]recapResponse    `json:"recaps"`
	Goals        []goalResponse              `json:"goals"`
	Penalties    []penaltyResponse           `json:"penalties"`
	Players      map[string][]playerResponse `json:"players"`
}

type recapResponse struct {
	HomeG         int `json:"homeG"`
	AwayG         int `json:"awayG"`
	HomeShots     int `json:"homeShots"`
	AwayShots     int `json:"awayShots"`
	HomePenalties int `json:"homePenalties"`
	AwayPenalties int `json:"awayPenalties"`
	HomePIM       int `json:"homePIM"`
	AwayPIM       int `json:"awayPIM"`
}

type goalResponse struct {
	Team      string          `json:"team"`
	Period    int             `json:"period"`
	Gametime  string          `json:"gametime"`
	HomeScore int             `json:"home_score"`
	AwayScore int             `json:"away_score"`
	GoalType  string          `json:"goal_type"`
	Player    *playerResponse `json:"player"`
}

type penaltyResponse struct {
	Team     string          `json:"team"`
	Period   int             `json:"period"`
	Gametime string          `json:"gametime"`
	Minutes  int             `json:"minutes"`
	Reason   string          `json:"reason"`
	Player   *playerResponse `json:"player"`
}

type playerResponse struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Jersey    int    `json:"jersey"`
	Position  string `json:"position"`
	TeamCode  string `json:"team_code"`
}

type standingResponse struct {
	Rank     int    `json:"rank"`
	TeamCode string `json:"team_code"`
	GP       int    `json:"gp"`
	W        int    `json:"w"`
	OTW      int    `json:"otw"`
	L        int    `json:"l"`
	OTL      int    `json:"otl"`
	Diff     int    `json:"diff"`
	Points   int    `json:"points"`
}
