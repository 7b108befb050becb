package models

import "github.com/fitplan/fitplan/internal/planner"

// ProfileResponse is a stored profile with its energy estimate.
// Energy is null when body metrics are missing.
type ProfileResponse struct {
	Profile   planner.Profile         `json:"profile"`
	Energy    *planner.EnergyEstimate `json:"energy"`
	CreatedAt Timestamp               `json:"createdAt"`
	UpdatedAt Timestamp               `json:"updatedAt"`
}

// EnergyResponse is the body of POST /v1/energy.
type EnergyResponse struct {
	Profile planner.Profile         `json:"profile"`
	Energy  *planner.EnergyEstimate `json:"energy"`
	Macros  *planner.MacroTargets   `json:"macros"`
}

// CatalogResponse is the body of GET /v1/catalog/{equipment}.
type CatalogResponse struct {
	Equipment planner.Equipment `json:"equipment"`
	Patterns  planner.Catalog   `json:"patterns"`
}
