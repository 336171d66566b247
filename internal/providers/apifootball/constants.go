package apifootball

import "time"

const (
	providerName = "apifootball"

	defaultBaseURL     = "https://api-football-v1.p.rapidapi.com/v3"
	defaultAPIHost     = "api-football-v1.p.rapidapi.com"
	defaultHTTPTimeout = 30 * time.Second
	defaultTimezone    = "UTC"

	fixturesPath = "/fixtures"
	liveAll      = "all"

	headerAPIKey    = "x-rapidapi-key"
	headerAPIHost   = "x-rapidapi-host"
	headerRemaining = "x-ratelimit-requests-remaining"

	// Upstream pages are small; anything past this is a misbehaving server.
	maxBodyBytes = 8 << 20
	errBodyBytes = 512
)

// Upstream status short codes with a non-SCHEDULED mapping.
const (
	statusFirstHalf  = "1H"
	statusSecondHalf = "2H"
	statusHalfTime   = "HT"
	statusFullTime   = "FT"
	statusCancelled  = "CANC"
)
