package models

import (
	"time"

	"transport-backend/internal/utils"
)

type DriverInfo struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// Schedule is one departure of a Route with its capacity and rate table.
type Schedule struct {
	ID             string    `json:"id"`
	RouteID        string    `json:"routeId"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	VehicleType    string    `json:"vehicleType"`
	MaxPassengers  *int      `json:"maxPassengers"`
	AvailableSeats *int      `json:"availableSeats"`

	BasePricePassenger *utils.Money `json:"basePricePassenger"`
	BasePricePackage   *utils.Money `json:"basePricePackage"` // per kg
	BasePriceCar       *utils.Money `json:"basePriceCar"`

	Status     string      `json:"status"`
	DriverInfo *DriverInfo `json:"driverInfo"`
	CreatedAt  time.Time   `json:"createdAt"`
}
