package domain

// DefaultMinutesPerMission is used when a user has not set their own pace.
const DefaultMinutesPerMission = 4.0

// DefaultMinSetPrice is the set value below which parts are ranked by ducats.
const DefaultMinSetPrice = 30.0

// SimConfig is a user's display preference bag for simulation output.
type SimConfig struct {
	UserID            string  `json:"user_id" db:"user_id"`
	ShowPlatPerHour   bool    `json:"show_plat_per_hour" db:"show_plat_per_hour"`
	ShowDucatPerHour  bool    `json:"show_ducat_per_hour" db:"show_ducat_per_hour"`
	ShowPerCycle      bool    `json:"show_per_cycle" db:"show_per_cycle"`
	ShowPerRun        bool    `json:"show_per_run" db:"show_per_run"`
	ShowTraces        bool    `json:"show_traces" db:"show_traces"`
	ShowTraceEff      bool    `json:"show_trace_efficiency" db:"show_trace_efficiency"`
	Verbose           bool    `json:"verbose" db:"verbose"`
	MinutesPerMission float64 `json:"minutes_per_mission" db:"minutes_per_mission"`
	MinSetPrice       float64 `json:"min_set_price" db:"min_set_price"`
}

// DefaultSimConfig is handed to users without a stored preference.
func DefaultSimConfig(userID string) SimConfig {
	return SimConfig{
		UserID:            userID,
		ShowPlatPerHour:   true,
		ShowPerCycle:      true,
		ShowTraces:        true,
		MinutesPerMission: DefaultMinutesPerMission,
		MinSetPrice:       DefaultMinSetPrice,
	}
}
