package domain

// Table is a mongo collection name
type Table string

const (
	TableOffers        Table = "offers"
	TableAuctions      Table = "auctions"
	TableDonations     Table = "donations"
	TableBalances      Table = "balances"
	TableMarketConfigs Table = "market_configs"
	TableCounters      Table = "counters"
)
