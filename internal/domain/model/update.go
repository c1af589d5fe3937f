package model

// Delivery field defaults applied when a field is missing or malformed.
const (
	DefaultDeliveryStatus = "preparing"
	DefaultDriverName     = "Driver"
	DefaultETA            = "Unknown"
)

// Score field defaults applied when a field is missing or malformed.
const (
	DefaultHomeTeam = "Home"
	DefaultAwayTeam = "Away"
	DefaultGameTime = "LIVE"
)

// DeliveryUpdate describes one step of a food-delivery order.
type DeliveryUpdate struct {
	Status     string `json:"status"`
	DriverName string `json:"driver_name"`
	ETA        string `json:"eta"`
	Progress   int    `json:"progress"`
}

// DeliveryFromData decodes a delivery object, substituting defaults.
func DeliveryFromData(m map[string]any) DeliveryUpdate {
	return DeliveryUpdate{
		Status:     stringField(m, "status", DefaultDeliveryStatus),
		DriverName: stringField(m, "driver_name", DefaultDriverName),
		ETA:        stringField(m, "eta", DefaultETA),
		Progress:   intField(m, "progress", 0),
	}
}

// ScoreUpdate describes the state of a live game.
type ScoreUpdate struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	GameTime  string `json:"game_time"`
	Quarter   string `json:"quarter"`
	Progress  int    `json:"progress"`
}

// ScoreFromData decodes a score object, substituting defaults.
func ScoreFromData(m map[string]any) ScoreUpdate {
	return ScoreUpdate{
		HomeTeam:  stringField(m, "home_team", DefaultHomeTeam),
		AwayTeam:  stringField(m, "away_team", DefaultAwayTeam),
		HomeScore: intField(m, "home_score", 0),
		AwayScore: intField(m, "away_score", 0),
		GameTime:  stringField(m, "game_time", DefaultGameTime),
		Quarter:   stringField(m, "quarter", ""),
		Progress:  intField(m, "progress", 0),
	}
}
