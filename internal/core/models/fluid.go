package models

import "encoding/json"

// MaxFluidBoxes caps how many fluid boxes a single entity reports.
const MaxFluidBoxes = 6

type Fluid struct {
	Name     string  `json:"name" yaml:"name"`
	Amount   float64 `json:"amount" yaml:"amount"`
	FlowRate float64 `json:"flow_rate,omitempty" yaml:"flow_rate,omitempty"`
}

// FluidBox holds up to MaxFluidBoxes fluids inline.
type FluidBox struct {
	fluids [MaxFluidBoxes]Fluid
	n      int
}

// NewFluidBox keeps the first MaxFluidBoxes fluids and drops the rest.
func NewFluidBox(fluids ...Fluid) FluidBox {
	var fb FluidBox
	for _, f := range fluids {
		fb.Add(f)
	}
	return fb
}

// Add appends a fluid and reports false when the box is already full.
func (fb *FluidBox) Add(f Fluid) bool {
	if fb.n == MaxFluidBoxes {
		return false
	}
	fb.fluids[fb.n] = f
	fb.n++
	return true
}

func (fb FluidBox) Len() int { return fb.n }

func (fb FluidBox) Fluids() []Fluid {
	out := make([]Fluid, fb.n)
	copy(out, fb.fluids[:fb.n])
	return out
}

// Primary is the first non-empty fluid.
func (fb FluidBox) Primary() (Fluid, bool) {
	for i := 0; i < fb.n; i++ {
		if fb.fluids[i].Name != "" {
			return fb.fluids[i], true
		}
	}
	return Fluid{}, false
}

// PrimaryName is the first fluid's name or "".
func (fb FluidBox) PrimaryName() string {
	f, _ := fb.Primary()
	return f.Name
}

func (fb FluidBox) Names() []string {
	out := make([]string, 0, fb.n)
	for i := 0; i < fb.n; i++ {
		if fb.fluids[i].Name != "" {
			out = append(out, fb.fluids[i].Name)
		}
	}
	return out
}

func (fb FluidBox) TotalAmount() float64 {
	var total float64
	for i := 0; i < fb.n; i++ {
		total += fb.fluids[i].Amount
	}
	return total
}

func (fb FluidBox) TotalFlow() float64 {
	var total float64
	for i := 0; i < fb.n; i++ {
		total += fb.fluids[i].FlowRate
	}
	return total
}

func (fb FluidBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(fb.Fluids())
}

func (fb *FluidBox) UnmarshalJSON(data []byte) error {
	var fluids []Fluid
	if err := json.Unmarshal(data, &fluids); err != nil {
		return err
	}
	*fb = NewFluidBox(fluids...)
	return nil
}
