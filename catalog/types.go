// Package catalog defines the product model and the HTTP client for the
// remote catalog service. The service owns all durable product state; this
// package only holds transient copies fetched for display.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// KitType classifies a jersey within a club's season lineup.
type KitType string

const (
	KitHome   KitType = "home"
	KitAway   KitType = "away"
	KitThird  KitType = "third"
	KitFourth KitType = "fourth"
)

// KitTypes lists all valid kit types in display order.
var KitTypes = []KitType{KitHome, KitAway, KitThird, KitFourth}

// ParseKitType parses a kit type string.
func ParseKitType(s string) (KitType, error) {
	switch KitType(s) {
	case KitHome, KitAway, KitThird, KitFourth:
		return KitType(s), nil
	default:
		return "", fmt.Errorf("unknown kit type: %q (want home, away, third or fourth)", s)
	}
}

// Valid reports whether the kit type is one of the known values.
func (t KitType) Valid() bool {
	_, err := ParseKitType(string(t))
	return err == nil
}

// Label returns the human-readable form of the kit type.
func (t KitType) Label() string {
	switch t {
	case KitHome:
		return "Home Kit"
	case KitAway:
		return "Away Kit"
	case KitThird:
		return "Third Kit"
	case KitFourth:
		return "Fourth Kit"
	default:
		return string(t)
	}
}

// Product is a catalog entry as served by the remote service.
// The ID is server-assigned and immutable once created.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Club        string   `json:"club"`
	Type        KitType  `json:"type"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// PriceDecimal returns the price as a decimal for exact arithmetic.
func (p Product) PriceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(p.Price)
}

// HasSize reports whether size is one of the product's declared sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Draft is a product without an identity, used for creation. Keeping it a
// separate type makes create-vs-update an explicit caller decision instead
// of an inference from field presence.
type Draft struct {
	Name        string   `json:"name"`
	Club        string   `json:"club"`
	Type        KitType  `json:"type"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Validate checks that the draft is acceptable to send to the service.
func (d Draft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Club == "" {
		return fmt.Errorf("club is required")
	}
	if !d.Type.Valid() {
		return fmt.Errorf("invalid kit type: %q", d.Type)
	}
	if d.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// Patch is a partial product update. Nil fields are left unchanged by the
// service; the ID travels in the URL, never in the body.
type Patch struct {
	Name        *string  `json:"name,omitempty"`
	Club        *string  `json:"club,omitempty"`
	Type        *KitType `json:"type,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Description *string  `json:"description,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// PatchFromDraft builds a full-replacement patch from a draft, for edit
// forms that resubmit every field.
func PatchFromDraft(d Draft) Patch {
	return Patch{
		Name:        &d.Name,
		Club:        &d.Club,
		Type:        &d.Type,
		Price:       &d.Price,
		Image:       &d.Image,
		Description: &d.Description,
		Sizes:       d.Sizes,
	}
}
