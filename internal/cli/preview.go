package cli

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"quote-wizard/internal/heuristics"
	"quote-wizard/internal/model"
)

type previewOutput struct {
	VolumeM3              float64         `json:"volume_m3"`
	Truck                 model.TruckTier `json:"truck"`
	KitchenCost           float64         `json:"kitchen_cost"`
	DisposalCost          float64         `json:"disposal_cost"`
	LongCarryCost         float64         `json:"long_carry_cost"`
	ExternalLiftSuggested bool            `json:"external_lift_suggested"`
}

type previewInput struct {
	volume      float64
	kitchen     float64
	disposal    float64
	carry       float64
	origin      model.Location
	destination model.Location
	quoteVolume float64
}

func previewCmd() *cobra.Command {
	var in previewInput
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the local preview values for the given inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(computePreview(in))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.volume, "volume", 0, "move volume in m³")
	f.Float64Var(&in.kitchen, "kitchen-meters", 0, "kitchen length in meters")
	f.Float64Var(&in.disposal, "disposal", 0, "disposal volume in m³")
	f.Float64Var(&in.carry, "carry", 0, "carry distance in meters")
	f.IntVar(&in.origin.Floor, "origin-floor", 0, "origin floor")
	f.BoolVar(&in.origin.HasElevator, "origin-elevator", false, "origin has an elevator")
	f.IntVar(&in.destination.Floor, "destination-floor", 0, "destination floor")
	f.BoolVar(&in.destination.HasElevator, "destination-elevator", false, "destination has an elevator")
	f.Float64Var(&in.quoteVolume, "quote-volume", 0, "volume of the last quote in m³")
	return cmd
}

func computePreview(in previewInput) previewOutput {
	return previewOutput{
		VolumeM3:              in.volume,
		Truck:                 heuristics.Truck(in.volume),
		KitchenCost:           heuristics.KitchenCost(in.kitchen),
		DisposalCost:          heuristics.DisposalCost(in.disposal),
		LongCarryCost:         heuristics.LongCarryCost(in.carry),
		ExternalLiftSuggested: heuristics.SuggestExternalLift(in.origin, in.destination, in.quoteVolume),
	}
}
