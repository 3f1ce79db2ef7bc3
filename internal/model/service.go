package model

type ServiceType string

const (
	ServicePacking          ServiceType = "packing"
	ServiceDisassembly      ServiceType = "disassembly"
	ServiceHVZPermit        ServiceType = "hvz_permit"
	ServiceKitchenAssembly  ServiceType = "kitchen_assembly"
	ServiceExternalLift     ServiceType = "external_lift"
	ServiceDisposal         ServiceType = "disposal"
	ServiceLongCarry        ServiceType = "long_carry"
	ServiceInsuranceBasic   ServiceType = "insurance_basic"
	ServiceInsurancePremium ServiceType = "insurance_premium"
)

// ServiceOrder is the order in which services are listed on the wire.
var ServiceOrder = []ServiceType{
	ServicePacking,
	ServiceDisassembly,
	ServiceHVZPermit,
	ServiceKitchenAssembly,
	ServiceExternalLift,
	ServiceDisposal,
	ServiceLongCarry,
	ServiceInsuranceBasic,
	ServiceInsurancePremium,
}

func (t ServiceType) Valid() bool {
	for _, s := range ServiceOrder {
		if s == t {
			return true
		}
	}
	return false
}

// IsInsurance reports whether t is one of the mutually exclusive insurance tiers.
func (t ServiceType) IsInsurance() bool {
	return t == ServiceInsuranceBasic || t == ServiceInsurancePremium
}

type InsuranceTier string

const (
	InsuranceNone    InsuranceTier = "none"
	InsuranceBasic   InsuranceTier = "basic"
	InsurancePremium InsuranceTier = "premium"
)

// ServiceType maps the tier to its service toggle; ok is false for "none".
func (t InsuranceTier) ServiceType() (ServiceType, bool) {
	switch t {
	case InsuranceBasic:
		return ServiceInsuranceBasic, true
	case InsurancePremium:
		return ServiceInsurancePremium, true
	}
	return "", false
}

type ServiceMetadata struct {
	KitchenMeters    float64 `json:"kitchen_meters,omitempty"`
	DisposalVolumeM3 float64 `json:"disposal_volume_m3,omitempty"`
	CarryDistanceM   float64 `json:"carry_distance_m,omitempty"`
	DeclaredValue    float64 `json:"declared_value,omitempty"`
}

// Service is one add-on toggle. Cost holds the local preview cost when the
// service has a slider-driven formula.
type Service struct {
	Enabled  bool            `json:"enabled"`
	Cost     *float64        `json:"cost,omitempty"`
	Metadata ServiceMetadata `json:"metadata"`
}

func (s Service) clone() Service {
	if s.Cost != nil {
		c := *s.Cost
		s.Cost = &c
	}
	return s
}

// ServiceLine is the wire form of a service sent to the pricing backend.
type ServiceLine struct {
	ServiceType ServiceType     `json:"service_type"`
	Enabled     bool            `json:"enabled"`
	Cost        *float64        `json:"cost,omitempty"`
	Metadata    ServiceMetadata `json:"metadata"`
}

// ServiceLines flattens a service map into wire order.
func ServiceLines(services map[ServiceType]Service) []ServiceLine {
	lines := make([]ServiceLine, 0, len(services))
	for _, t := range ServiceOrder {
		s, ok := services[t]
		if !ok {
			continue
		}
		s = s.clone()
		lines = append(lines, ServiceLine{
			ServiceType: t,
			Enabled:     s.Enabled,
			Cost:        s.Cost,
			Metadata:    s.Metadata,
		})
	}
	return lines
}
