package heuristics

import (
	"math"
	"testing"

	"quote-wizard/internal/model"
)

func TestTruck(t *testing.T) {
	tests := []struct {
		volume   float64
		capacity float64
		progress float64
		label    string
	}{
		{0, 20, 0, "3.5t"},
		{10, 20, 0.5, "3.5t"},
		{18, 20, 0.9, "3.5t"},
		{18.01, 35, 18.01 / 35, "7.5t"},
		{32, 35, 32.0 / 35, "7.5t"},
		{40, 50, 0.8, "12t"},
		{75, 50, 1, "12t"},
		{-3, 20, 0, "3.5t"},
	}
	for _, tt := range tests {
		got := Truck(tt.volume)
		if got.CapacityM3 != tt.capacity {
			t.Fatalf("volume %v: expected capacity %v, got %v", tt.volume, tt.capacity, got.CapacityM3)
		}
		if math.Abs(got.Progress-tt.progress) > 1e-9 {
			t.Fatalf("volume %v: expected progress %v, got %v", tt.volume, tt.progress, got.Progress)
		}
		if got.Label != tt.label {
			t.Fatalf("volume %v: expected label %s, got %s", tt.volume, tt.label, got.Label)
		}
	}
}

func TestTruckProgressBounded(t *testing.T) {
	for v := -10.0; v <= 200; v += 0.5 {
		p := TruckProgress(v)
		if p < 0 || p > 1 {
			t.Fatalf("volume %v: progress %v out of [0,1]", v, p)
		}
	}
}

func TestKitchenCost(t *testing.T) {
	tests := []struct {
		meters float64
		want   float64
	}{
		{0, 0},
		{1, 45},
		{4.5, 202.5},
		{10, 450},
		{15, 450},
		{-2, 0},
	}
	for _, tt := range tests {
		if got := KitchenCost(tt.meters); got != tt.want {
			t.Fatalf("KitchenCost(%v) = %v, want %v", tt.meters, got, tt.want)
		}
	}
}

func TestDisposalCost(t *testing.T) {
	tests := []struct {
		volume float64
		want   float64
	}{
		{0, 0},
		{-1, 0},
		{1, 125},
		{3, 215},
		{20, 980},
		{50, 980},
	}
	for _, tt := range tests {
		if got := DisposalCost(tt.volume); got != tt.want {
			t.Fatalf("DisposalCost(%v) = %v, want %v", tt.volume, got, tt.want)
		}
	}
}

func TestLongCarryCost(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 0},
		{10, 0},
		{10.5, 35},
		{20, 35},
		{21, 70},
		{100, 315},
		{250, 315},
	}
	for _, tt := range tests {
		if got := LongCarryCost(tt.distance); got != tt.want {
			t.Fatalf("LongCarryCost(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestSliderCostsMonotonic(t *testing.T) {
	prevK, prevD, prevC := -1.0, -1.0, -1.0
	for x := 0.0; x <= 120; x += 0.25 {
		k, d, c := KitchenCost(x), DisposalCost(x), LongCarryCost(x)
		if k < prevK || d < prevD || c < prevC {
			t.Fatalf("cost decreased at %v", x)
		}
		prevK, prevD, prevC = k, d, c
	}
}

func TestSuggestExternalLift(t *testing.T) {
	tests := []struct {
		name   string
		origin model.Location
		dest   model.Location
		volume float64
		want   bool
	}{
		{"high floor without elevator", model.Location{Floor: 5}, model.Location{}, 0, true},
		{"high floor with elevator", model.Location{Floor: 5, HasElevator: true}, model.Location{}, 0, false},
		{"destination high floor", model.Location{}, model.Location{Floor: 6}, 0, true},
		{"fourth floor is fine", model.Location{Floor: 4}, model.Location{Floor: 4}, 0, false},
		{"large move above second floor", model.Location{Floor: 3, HasElevator: true}, model.Location{}, 55, true},
		{"large move on low floors", model.Location{Floor: 2}, model.Location{Floor: 1}, 80, false},
		{"exactly fifty", model.Location{Floor: 3}, model.Location{}, 50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestExternalLift(tt.origin, tt.dest, tt.volume); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInventoryVolume(t *testing.T) {
	items := []model.InventoryItem{
		{ItemID: "sofa", Quantity: 1, VolumeM3: 2.5},
		{ItemID: "box", Quantity: 20, VolumeM3: 0.06},
		{ItemID: "ghost", Quantity: 0, VolumeM3: 4},
	}
	if got := InventoryVolume(items); math.Abs(got-3.7) > 1e-9 {
		t.Fatalf("expected 3.7, got %v", got)
	}
	if got := InventoryVolume(nil); got != 0 {
		t.Fatalf("expected 0 for empty inventory, got %v", got)
	}
}

func TestComputePrefersInventoryVolume(t *testing.T) {
	s := model.NewSession()
	s.ApartmentSize = model.SizeTwoBR
	if got := Compute(s).VolumeM3; got != 40 {
		t.Fatalf("expected apartment fallback 40, got %v", got)
	}

	s.Prediction = &model.Prediction{PredictedVolumeM3: 33}
	if got := Compute(s).VolumeM3; got != 33 {
		t.Fatalf("expected predicted 33, got %v", got)
	}

	s.Inventory = []model.InventoryItem{{ItemID: "bed", Quantity: 2, VolumeM3: 1.5}}
	p := Compute(s)
	if p.VolumeM3 != 3 {
		t.Fatalf("expected inventory 3, got %v", p.VolumeM3)
	}
	if p.Truck.Label != "3.5t" {
		t.Fatalf("expected 3.5t, got %s", p.Truck.Label)
	}
}

func TestComputeServiceCosts(t *testing.T) {
	s := model.NewSession()
	s.Services[model.ServiceKitchenAssembly] = model.Service{Enabled: true, Metadata: model.ServiceMetadata{KitchenMeters: 4}}
	s.Services[model.ServiceDisposal] = model.Service{Enabled: false, Metadata: model.ServiceMetadata{DisposalVolumeM3: 3}}
	s.Services[model.ServicePacking] = model.Service{Enabled: true}

	costs := Compute(s).ServiceCosts
	if costs[model.ServiceKitchenAssembly] != 180 {
		t.Fatalf("expected kitchen 180, got %v", costs[model.ServiceKitchenAssembly])
	}
	if _, ok := costs[model.ServiceDisposal]; ok {
		t.Fatal("disabled service must not be priced")
	}
	if _, ok := costs[model.ServicePacking]; ok {
		t.Fatal("packing has no local formula")
	}
}
