package models

// Settings holds user preferences keyed by category. The whole object is
// persisted as a single JSON document and overwritten wholesale on save.
type Settings struct {
	Appearance    AppearanceSettings   `json:"appearance"`
	Trading       TradingSettings      `json:"trading"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
}

// AppearanceSettings holds display preferences.
type AppearanceSettings struct {
	Theme             string `json:"theme"`
	DataVisualization string `json:"dataVisualization"`
	CompactMode       bool   `json:"compactMode"`
	FontSize          string `json:"fontSize"`
}

// TradingSettings holds trade-entry defaults.
type TradingSettings struct {
	DefaultPosition  Side     `json:"defaultPosition"`
	DefaultQuantity  int      `json:"defaultQuantity"`
	RiskPercentage   float64  `json:"riskPercentage"`
	DefaultTimeframe string   `json:"defaultTimeframe"`
	PreferredMarkets []string `json:"preferredMarkets"`
}

// NotificationSettings holds alerting preferences.
type NotificationSettings struct {
	EmailAlerts    bool `json:"emailAlerts"`
	TradeReminders bool `json:"tradeReminders"`
	MarketNews     bool `json:"marketNews"`
	PriceAlerts    bool `json:"priceAlerts"`
}

// PrivacySettings holds data-sharing preferences.
type PrivacySettings struct {
	PublicProfile bool `json:"publicProfile"`
	ShowRealMoney bool `json:"showRealMoney"`
	AnonymizeData bool `json:"anonymizeData"`
}

// DefaultSettings returns the settings applied on first load.
func DefaultSettings() Settings {
	return Settings{
		Appearance: AppearanceSettings{
			Theme:             "dark",
			DataVisualization: "detailed",
			CompactMode:       false,
			FontSize:          "medium",
		},
		Trading: TradingSettings{
			DefaultPosition:  SideLong,
			DefaultQuantity:  10,
			RiskPercentage:   1,
			DefaultTimeframe: "Day",
			PreferredMarkets: []string{"US Equities"},
		},
		Notifications: NotificationSettings{
			EmailAlerts:    true,
			TradeReminders: true,
			MarketNews:     false,
			PriceAlerts:    true,
		},
		Privacy: PrivacySettings{
			PublicProfile: false,
			ShowRealMoney: false,
			AnonymizeData: true,
		},
	}
}
