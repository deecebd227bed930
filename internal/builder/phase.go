package builder

import "fmt"

// Phase is the wizard step. Progression is linear; going back happens only
// on explicit request.
type Phase int

const (
	PhaseQuantities Phase = iota
	PhaseDishSelection
	PhaseCheckout
)

var phaseNames = map[Phase]string{
	PhaseQuantities:    "quantities",
	PhaseDishSelection: "dishSelection",
	PhaseCheckout:      "checkout",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
