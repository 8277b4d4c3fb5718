package models

type Status string

const (
	StatusNormal                      Status = "normal"
	StatusWorking                     Status = "working"
	StatusEmpty                       Status = "empty"
	StatusFullOutput                  Status = "full_output"
	StatusNotPluggedInElectricNetwork Status = "not_plugged_in_electric_network"
)

// WarningFull is the belt warning reported when items cannot move on.
const WarningFull = "full"
