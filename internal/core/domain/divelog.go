package domain

import "time"

// TankMaterial is the closed set of accepted tank materials.
type TankMaterial string

const (
	TankSteel     TankMaterial = "Steel"
	TankAluminium TankMaterial = "Aluminium"
)

// DiveLog records a single dive. StartTime, EndTime, MaxDepth and Location are
// always present; the remaining measurements are optional. OwnerID references
// the user the dive belongs to and becomes nil when that user is deleted; the
// log itself is retained.
type DiveLog struct {
	ID                string        `json:"id"`
	StartTime         time.Time     `json:"startTime"`
	EndTime           time.Time     `json:"endTime"`
	MaxDepth          float64       `json:"maxDepth"`
	AvgDepth          *float64      `json:"avgDepth,omitempty"`
	WaterTemperature  *float64      `json:"waterTemperature,omitempty"`
	AirTemperature    *float64      `json:"airTemperature,omitempty"`
	TankMaterial      *TankMaterial `json:"tankMaterial,omitempty"`
	TankVolume        *float64      `json:"tankVolume,omitempty"`
	TankStartPressure *float64      `json:"tankStartPressure,omitempty"`
	TankEndPressure   *float64      `json:"tankEndPressure,omitempty"`
	WaterBody         *string       `json:"waterBody,omitempty"`
	Location          string        `json:"location"`
	Visibility        *string       `json:"visibility,omitempty"`
	AdditionalInfo    *string       `json:"additionalInfo,omitempty"`
	OwnerID           *string       `json:"user"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Owner is the resolved owner of a dive log: the slice of the owning user the
// access predicates need. A nil *Owner denotes an orphaned log.
type Owner struct {
	ID      string
	Role    Role
	Enabled bool
}

// OwnerOf derives the access-control owner reference from a user.
func OwnerOf(u *User) *Owner {
	if u == nil {
		return nil
	}
	return &Owner{ID: u.ID, Role: u.Role, Enabled: u.Enabled}
}
