package handler

import (
	"time"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// diveLogRequest is the shared payload for creating and updating a dive log.
// startTime, endTime, maxDepth and location are mandatory; the service rejects
// their zero values. The only validator tag is the tank material whitelist.
type diveLogRequest struct {
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	MaxDepth          float64   `json:"maxDepth"`
	AvgDepth          *float64  `json:"avgDepth"`
	WaterTemperature  *float64  `json:"waterTemperature"`
	AirTemperature    *float64  `json:"airTemperature"`
	TankMaterial      *string   `json:"tankMaterial" validate:"omitempty,oneof=Steel Aluminium"`
	TankVolume        *float64  `json:"tankVolume"`
	TankStartPressure *float64  `json:"tankStartPressure"`
	TankEndPressure   *float64  `json:"tankEndPressure"`
	WaterBody         *string   `json:"waterBody"`
	Location          string    `json:"location"`
	Visibility        *string   `json:"visibility"`
	AdditionalInfo    *string   `json:"additionalInfo"`
	// AddUser names the user the log is created for. Ignored for basic users.
	AddUser string `json:"addUser"`
}

func (r *diveLogRequest) fields() ports.LogFields {
	f := ports.LogFields{
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		MaxDepth:          r.MaxDepth,
		AvgDepth:          r.AvgDepth,
		WaterTemperature:  r.WaterTemperature,
		AirTemperature:    r.AirTemperature,
		TankVolume:        r.TankVolume,
		TankStartPressure: r.TankStartPressure,
		TankEndPressure:   r.TankEndPressure,
		WaterBody:         r.WaterBody,
		Location:          r.Location,
		Visibility:        r.Visibility,
		AdditionalInfo:    r.AdditionalInfo,
	}
	if r.TankMaterial != nil {
		m := domain.TankMaterial(*r.TankMaterial)
		f.TankMaterial = &m
	}
	return f
}
