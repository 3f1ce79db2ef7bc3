// Package heuristics provides the local preview formulas shown before the
// pricing backend answers. Every function is pure.
package heuristics

import (
	"math"

	"quote-wizard/internal/model"
)

const (
	KitchenRatePerMeter = 45.0
	MaxKitchenMeters    = 10.0

	DisposalBaseFee   = 80.0
	DisposalRatePerM3 = 45.0
	MaxDisposalVolume = 20.0

	CarryFreeAllowance = 10.0
	CarryStepMeters    = 10.0
	CarryRatePerStep   = 35.0
	MaxCarryDistance   = 100.0

	liftFloorWithoutElevator = 4
	liftFloorLargeMove       = 2
	liftLargeMoveVolume      = 50.0
)

// Truck tiers: capacity in m³ and the label of the recommended vehicle.
var truckTiers = []struct {
	upTo     float64
	capacity float64
	label    string
}{
	{18, 20, "3.5t"},
	{32, 35, "7.5t"},
	{math.Inf(1), 50, "12t"},
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func tier(volume float64) int {
	for i, t := range truckTiers {
		if volume <= t.upTo {
			return i
		}
	}
	return len(truckTiers) - 1
}

// TruckCapacity returns the capacity in m³ of the truck class for volume.
func TruckCapacity(volume float64) float64 {
	return truckTiers[tier(volume)].capacity
}

// TruckProgress is the fill fraction of the recommended truck, capped at 1.
func TruckProgress(volume float64) float64 {
	if math.IsNaN(volume) || volume <= 0 {
		return 0
	}
	return math.Min(volume/TruckCapacity(volume), 1.0)
}

// TruckLabel names the truck class for volume.
func TruckLabel(volume float64) string {
	return truckTiers[tier(volume)].label
}

// Truck bundles capacity, progress and label for the truck bar.
func Truck(volume float64) model.TruckTier {
	return model.TruckTier{
		CapacityM3: TruckCapacity(volume),
		Progress:   TruckProgress(volume),
		Label:      TruckLabel(volume),
	}
}

// ClampKitchenMeters bounds the kitchen slider to [0, MaxKitchenMeters].
func ClampKitchenMeters(m float64) float64 { return clamp(m, 0, MaxKitchenMeters) }

// KitchenCost previews kitchen assembly at a flat rate per meter.
func KitchenCost(meters float64) float64 {
	return ClampKitchenMeters(meters) * KitchenRatePerMeter
}

// ClampDisposalVolume bounds the disposal slider to [0, MaxDisposalVolume].
func ClampDisposalVolume(v float64) float64 { return clamp(v, 0, MaxDisposalVolume) }

// DisposalCost previews disposal: a base fee plus a rate per m³, nothing
// when there is nothing to dispose of.
func DisposalCost(volume float64) float64 {
	v := ClampDisposalVolume(volume)
	if v == 0 {
		return 0
	}
	return DisposalBaseFee + v*DisposalRatePerM3
}

// ClampCarryDistance bounds the carry slider to [0, MaxCarryDistance].
func ClampCarryDistance(d float64) float64 { return clamp(d, 0, MaxCarryDistance) }

// LongCarryCost previews the carry surcharge. The first 10 meters are free,
// each started 10 meters after that costs one step.
func LongCarryCost(distance float64) float64 {
	d := ClampCarryDistance(distance)
	if d <= CarryFreeAllowance {
		return 0
	}
	return math.Ceil((d-CarryFreeAllowance)/CarryStepMeters) * CarryRatePerStep
}

// SuggestExternalLift reports whether the UI should recommend an external
// lift. quoteVolume is the authoritative volume, 0 when no quote exists.
func SuggestExternalLift(origin, destination model.Location, quoteVolume float64) bool {
	if origin.Floor > liftFloorWithoutElevator && !origin.HasElevator {
		return true
	}
	if destination.Floor > liftFloorWithoutElevator && !destination.HasElevator {
		return true
	}
	return quoteVolume > liftLargeMoveVolume &&
		(origin.Floor > liftFloorLargeMove || destination.Floor > liftFloorLargeMove)
}

// InventoryVolume sums quantity × volume over all lines.
func InventoryVolume(items []model.InventoryItem) float64 {
	var total float64
	for _, it := range items {
		if it.Quantity <= 0 || it.VolumeM3 <= 0 {
			continue
		}
		total += float64(it.Quantity) * it.VolumeM3
	}
	return total
}
