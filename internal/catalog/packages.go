package catalog

import (
	"math"
	"strings"
)

// Ad package tiers, lowest to highest visibility.
const (
	TierBasic = "BASIC"
	TierPrime = "PRIME"
	TierTop   = "TOP"
)

var Tiers = []string{TierBasic, TierPrime, TierTop}

var Durations = []int{7, 15, 30}

// LaunchPromoCode is the single recognized promo code. It zeroes the
// order total; matching is case-insensitive. There is no expiry or usage
// tracking.
const LaunchPromoCode = "DIXLAUNCH"

// BookingFeatureCost is added to the order total when bookings are
// enabled for the ad.
const BookingFeatureCost = 45.0

type durationPrice struct {
	days  int
	price float64
}

// Static tier x duration price table.
var priceTable = map[string][]durationPrice{
	TierTop: {
		{days: 7, price: 54.99},
		{days: 15, price: 64.99},
		{days: 30, price: 99.99},
	},
	TierPrime: {
		{days: 7, price: 19.99},
		{days: 15, price: 35.99},
		{days: 30, price: 54.99},
	},
	TierBasic: {
		{days: 7, price: 14.99},
		{days: 15, price: 22.99},
		{days: 30, price: 34.99},
	},
}

// Package describes one purchasable tier with its duration options.
type Package struct {
	Tier      string           `json:"tier"`
	Title     string           `json:"title"`
	Durations []DurationOption `json:"durations"`
}

type DurationOption struct {
	Days  int     `json:"days"`
	Price float64 `json:"price"`
}

func Packages() []Package {
	titles := map[string]string{
		TierTop:   "TOP Ad",
		TierPrime: "Prime Ad",
		TierBasic: "Basic Ad",
	}
	pkgs := make([]Package, 0, len(Tiers))
	for i := len(Tiers) - 1; i >= 0; i-- {
		tier := Tiers[i]
		opts := make([]DurationOption, 0, len(priceTable[tier]))
		for _, dp := range priceTable[tier] {
			opts = append(opts, DurationOption{Days: dp.days, Price: dp.price})
		}
		pkgs = append(pkgs, Package{Tier: tier, Title: titles[tier], Durations: opts})
	}
	return pkgs
}

// ValidTier reports whether tier is a known package tier.
func ValidTier(tier string) bool {
	_, ok := priceTable[tier]
	return ok
}

// BasePrice looks up the list price for a tier and duration. The second
// return is false when the combination is not in the table.
func BasePrice(tier string, duration int) (float64, bool) {
	for _, dp := range priceTable[tier] {
		if dp.days == duration {
			return dp.price, true
		}
	}
	return 0, false
}

func IsPromoCodeValid(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), LaunchPromoCode)
}

// ComputeTotal is a pure function of the selection: base price, plus the
// booking feature when enabled, zeroed entirely by a valid promo code.
// Prices carry two decimals, so the sum is rounded back to cents to keep
// binary float noise out of the total.
func ComputeTotal(basePrice float64, bookingEnabled bool, promoCode string) float64 {
	if IsPromoCodeValid(promoCode) {
		return 0
	}
	total := basePrice
	if bookingEnabled {
		total += BookingFeatureCost
	}
	return math.Round(total*100) / 100
}
