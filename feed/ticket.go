package feed

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/quote"
	"github.com/tidwall/gjson"
)

// ParseTicket reads the indexer's ticket lookup for the market keyed by
// castHash. Both {"data": {"ticket": ...}} and {"ticket": ...} are
// accepted. A null or absent ticket means no market exists yet.
func ParseTicket(castHash string, body []byte) (quote.MarketState, error) {
	if !gjson.ValidBytes(body) {
		return quote.MarketState{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)

	ticket := root.Get("data.ticket")
	if !ticket.Exists() {
		ticket = root.Get("ticket")
	}
	market := quote.MarketState{Key: castHash}
	if !ticket.Exists() || ticket.Type == gjson.Null {
		return market, nil
	}
	if !ticket.IsObject() {
		return quote.MarketState{}, fmt.Errorf("%w: ticket=%s", ErrInvalidField, ticket.Raw)
	}

	supply, err := nonNegativeInt(ticket.Get("supply"), "supply")
	if err != nil {
		return quote.MarketState{}, err
	}
	activeTier, err := nonNegativeInt(ticket.Get("activeTier"), "activeTier")
	if err != nil {
		return quote.MarketState{}, err
	}

	market.Exists = true
	market.Supply = supply
	market.ActiveTier = int(activeTier)
	return market, nil
}
