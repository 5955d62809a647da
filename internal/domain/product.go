package domain

import (
	"time"
)

// TimeFormat is the fixed textual timestamp format used for both parsing
// request payloads and rendering responses (UTC, seconds precision).
const TimeFormat = "2006-01-02T15:04:05Z"

// FeaturedRatingThreshold is the rating above which a product is forced
// to be featured.
const FeaturedRatingThreshold = 8

// ExpirationFloor is the minimum distance between the current time and a
// product's expiration date.
const ExpirationFloor = 30 * 24 * time.Hour

// Product is the catalog aggregate: the product row together with its
// eagerly-loaded brand and categories.
type Product struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Rating         float64    `json:"rating"`
	Featured       bool       `json:"featured"`
	ExpirationDate time.Time  `json:"expiration_date"`
	ItemsInStock   int64      `json:"items_in_stock"`
	ReceiptDate    time.Time  `json:"receipt_date"`
	CreatedAt      time.Time  `json:"created_at"`
	BrandID        int64      `json:"-"`
	Brand          Brand      `json:"brand"`
	Categories     []Category `json:"categories"`
}

// DeriveFeatured applies the auto-featured rule: a rating above the
// threshold forces featured to true regardless of the client-supplied
// value; it is never forced false. A nil client value means unset and
// resolves to false.
func DeriveFeatured(rating float64, clientFeatured *bool) bool {
	if rating > FeaturedRatingThreshold {
		return true
	}
	if clientFeatured != nil {
		return *clientFeatured
	}
	return false
}

// ParseTimestamp parses a timestamp in the fixed wire format.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// FormatTimestamp renders a timestamp in the fixed wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
