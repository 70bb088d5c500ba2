package alphavantage

// Raw response shapes for the Alpha Vantage query endpoints. All numeric
// fields arrive as strings.

type metaData struct {
	Information   string `json:"1. Information"`
	Symbol        string `json:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed"`
	TimeZone      string `json:"6. Time Zone"`
}

type rawBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// timeSeriesResponse covers both intraday and daily payloads; only one of
// the series maps is populated. Note / ErrorMessage / Information appear in
// place of data on rate limits and bad requests.
type timeSeriesResponse struct {
	MetaData       metaData          `json:"Meta Data"`
	IntradaySeries map[string]rawBar `json:"Time Series (5min)"`
	DailySeries    map[string]rawBar `json:"Time Series (Daily)"`
	Note           string            `json:"Note"`
	Information    string            `json:"Information"`
	ErrorMessage   string            `json:"Error Message"`
}

// overviewResponse is the company-overview payload. An empty Symbol with no
// error field means "no data" (the API returns {} for unknown symbols).
type overviewResponse struct {
	Symbol             string `json:"Symbol"`
	Name               string `json:"Name"`
	Description        string `json:"Description"`
	Sector             string `json:"Sector"`
	Industry           string `json:"Industry"`
	Exchange           string `json:"Exchange"`
	MarketCap          string `json:"MarketCapitalization"`
	PERatio            string `json:"PERatio"`
	EPS                string `json:"EPS"`
	DividendYield      string `json:"DividendYield"`
	High52Week         string `json:"52WeekHigh"`
	Low52Week          string `json:"52WeekLow"`
	AnalystTargetPrice string `json:"AnalystTargetPrice"`
	Note               string `json:"Note"`
	Information        string `json:"Information"`
}
