package models

// Card labels. A guess is graded against the card's ground-truth label.
const (
	LabelAuthentic   = "authentic"
	LabelCounterfeit = "counterfeit"
)

// OfferCard is a single marketplace offer players judge as authentic or
// counterfeit. Immutable once created; rounds hand out copies, never share
// mutable state.
type OfferCard struct {
	ID            string   `json:"id"`
	Product       string   `json:"product"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	ShippingInfo  string   `json:"shipping_info"`
	Description   string   `json:"description"`
	Photos        int      `json:"photos"`
	Signals       []string `json:"signals"`
	Label         string   `json:"label"`      // authentic | counterfeit
	Difficulty    int      `json:"difficulty"` // 1, 2 or 3
}
