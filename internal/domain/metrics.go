package domain

// Metrics is the aggregate dashboard payload served by the remote store.
type Metrics struct {
	TotalAPIs         int             `json:"totalApis" yaml:"totalApis" validate:"gte=0"`
	TotalAPICalls     int64           `json:"totalApiCalls" yaml:"totalApiCalls" validate:"gte=0"`
	NewAPIsLastMonth  int             `json:"newApisLastMonth" yaml:"newApisLastMonth" validate:"gte=0"`
	ActiveUsers       int             `json:"activeUsers" yaml:"activeUsers" validate:"gte=0"`
	PopularCategories []CategoryShare `json:"popularCategories" yaml:"popularCategories" validate:"dive"`
	APICallsOverTime  []CallsPoint    `json:"apiCallsOverTime" yaml:"apiCallsOverTime" validate:"dive"`
	TopAPIs           []TopListing    `json:"topApis" yaml:"topApis" validate:"dive"`
}

// CategoryShare is one slice of the category breakdown, in percent.
type CategoryShare struct {
	Name       string  `json:"name" yaml:"name" validate:"required"`
	Percentage float64 `json:"percentage" yaml:"percentage" validate:"gte=0,lte=100"`
}

// CallsPoint is one period of the calls time series.
type CallsPoint struct {
	Month string `json:"month" yaml:"month" validate:"required"`
	Calls int64  `json:"calls" yaml:"calls" validate:"gte=0"`
}

// TopListing is one entry of the most-called listings ranking.
type TopListing struct {
	ID     string  `json:"id" yaml:"id" validate:"required"`
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Calls  int64   `json:"calls" yaml:"calls" validate:"gte=0"`
	Uptime float64 `json:"uptime" yaml:"uptime" validate:"gte=0,lte=100"`
}
