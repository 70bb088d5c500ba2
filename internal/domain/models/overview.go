package models

// CompanyOverview is the company metadata block for one symbol.
type CompanyOverview struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	Exchange      string  `json:"exchange"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       string  `json:"pe_ratio"`
	EPS           string  `json:"eps"`
	DividendYield string  `json:"dividend_yield"`
	High52Week    float64 `json:"high_52_week"`
	Low52Week     float64 `json:"low_52_week"`
	AnalystTarget string  `json:"analyst_target"`
}
