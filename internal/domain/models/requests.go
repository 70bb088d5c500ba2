package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
	Interval string `query:"interval" json:"interval" default:"5min" validate:"oneof=5min daily"`
}

type SeriesRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
	Interval string `query:"interval" json:"interval" default:"5min" validate:"oneof=5min daily"`
	Window   int    `query:"window" json:"window" default:"20" validate:"gte=2,lte=500"`
	Period   int    `query:"period" json:"period" default:"14" validate:"gte=2,lte=500"`
}

type OverviewRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
}

// Username is optional; handlers fall back to the configured account.

type ProfileRequest struct {
	Username string `query:"username" json:"username" validate:"omitempty,max=64"`
}

type ReposRequest struct {
	Username string `query:"username" json:"username" validate:"omitempty,max=64"`
	Limit    int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=100"`
}
