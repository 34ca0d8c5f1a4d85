package nordpool

import "time"

type dayAheadPrices struct {
	DeliveryDateCET  string           `json:"deliveryDateCET"`
	Version          int              `json:"version"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeliveryAreas    []string         `json:"deliveryAreas"`
	Market           string           `json:"market"`
	Currency         string           `json:"currency"`
	ExchangeRate     float64          `json:"exchangeRate"`
	MultiAreaEntries []multiAreaEntry `json:"multiAreaEntries"`
	AreaStates       []areaState      `json:"areaStates"`
}

type multiAreaEntry struct {
	DeliveryStart time.Time          `json:"deliveryStart"`
	DeliveryEnd   time.Time          `json:"deliveryEnd"`
	EntryPerArea  map[string]float64 `json:"entryPerArea"` // currency per MWh
}

type areaState struct {
	State string   `json:"state"` // "Final" or "Preliminary"
	Areas []string `json:"areas"`
}
