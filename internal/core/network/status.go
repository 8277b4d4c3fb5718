package network

import "github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"

func beltStatus(belts []*models.TransportBelt, inventory models.Inventory) models.Status {
	if inventory.IsEmpty() {
		return models.StatusEmpty
	}
	for _, b := range belts {
		if b.HasWarning(models.WarningFull) {
			return models.StatusFullOutput
		}
	}
	return models.StatusWorking
}

// pipeStatus: any moving fluid means working; otherwise empty when nothing is
// held and full when fluid sits still.
func pipeStatus(pipes []*models.Pipe) models.Status {
	empty, static := true, true
	for _, p := range pipes {
		if p.Fluid.Amount > 0 && p.Fluid.FlowRate > 0 {
			return models.StatusWorking
		}
		if p.Fluid.Amount > 0 {
			empty = false
		}
		if p.Fluid.FlowRate > 0 {
			static = false
		}
	}
	switch {
	case empty:
		return models.StatusEmpty
	case static:
		return models.StatusFullOutput
	}
	return models.StatusWorking
}

func electricityStatus(poles []*models.ElectricityPole) models.Status {
	for _, p := range poles {
		if p.FlowRate > 0 {
			return models.StatusWorking
		}
	}
	return models.StatusNotPluggedInElectricNetwork
}
