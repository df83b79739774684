package clinics

import "time"

// PriceBand is the advertised cost tier for a clinic's screening services.
type PriceBand string

const (
	PriceFree   PriceBand = "FREE"
	PriceLow    PriceBand = "LOW"
	PriceMedium PriceBand = "MEDIUM"
	PriceHigh   PriceBand = "HIGH"
)

// Valid reports whether the band is one of the enumerated tiers.
func (p PriceBand) Valid() bool {
	switch p {
	case PriceFree, PriceLow, PriceMedium, PriceHigh:
		return true
	}
	return false
}

func (p PriceBand) rank() int {
	switch p {
	case PriceFree:
		return 0
	case PriceLow:
		return 1
	case PriceMedium:
		return 2
	default:
		return 3
	}
}

type Clinic struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	County            string    `json:"county"`
	LocationCoords    string    `json:"locationCoords,omitempty"`
	AvailableServices string    `json:"availableServices"`
	PriceBand         PriceBand `json:"priceBand"`
	ContactPhone      string    `json:"contactPhone,omitempty"`
	IsNHIFAccredited  bool      `json:"isNHIFAccredited"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Filter narrows a clinic listing. Zero values match everything.
type Filter struct {
	County    string
	Service   string
	PriceBand PriceBand
}
