package entities

// Currency is reference data for a supported currency.
//
// Storage model (DynamoDB):
//   - PK: code (ISO 4217, e.g. "USD")
//
// DecimalPlaces drives both display formatting and the granularity check on
// budget amounts (e.g. JPY carries 0, USD carries 2).
type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	IsActive      bool   `json:"is_active"`
	IsBase        bool   `json:"is_base"`
	DecimalPlaces int    `json:"decimal_places"`
	Description   string `json:"description,omitempty"`
}
