package models

import (
	"time"

	"transport-backend/internal/utils"
)

// Booking is a customer's reservation against one Schedule. Only the field
// group matching ServiceType is populated.
type Booking struct {
	ID            string `json:"id"`
	ScheduleID    string `json:"scheduleId"`
	ServiceType   string `json:"serviceType"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	PassengerCount *int     `json:"passengerCount"`
	PassengerNames []string `json:"passengerNames"`

	PackageWeight      *utils.Quantity `json:"packageWeight"`
	PackageDescription *string         `json:"packageDescription"`

	CarMake        *string `json:"carMake"`
	CarModel       *string `json:"carModel"`
	CarYear        *int    `json:"carYear"`
	CarPlateNumber *string `json:"carPlateNumber"`

	PickupAddress   *string `json:"pickupAddress"`
	DeliveryAddress *string `json:"deliveryAddress"`
	SpecialRequests *string `json:"specialRequests"`

	TotalPrice    utils.Money `json:"totalPrice"`
	PaymentStatus string      `json:"paymentStatus"`
	BookingStatus string      `json:"bookingStatus"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// BookingInput is the client payload for a new booking. It has no price or
// status fields; those are always set by the server.
type BookingInput struct {
	ScheduleID    string `json:"scheduleId" validate:"required,max=36"`
	ServiceType   string `json:"serviceType" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required,max=255"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=100"`

	PassengerCount *int     `json:"passengerCount"`
	PassengerNames []string `json:"passengerNames" validate:"omitempty,dive,max=255"`

	PackageWeight      *utils.Quantity `json:"packageWeight"`
	PackageDescription *string         `json:"packageDescription" validate:"omitempty,max=2000"`

	CarMake        *string `json:"carMake" validate:"omitempty,max=100"`
	CarModel       *string `json:"carModel" validate:"omitempty,max=100"`
	CarYear        *int    `json:"carYear" validate:"omitempty,min=1900,max=2100"`
	CarPlateNumber *string `json:"carPlateNumber" validate:"omitempty,max=50"`

	PickupAddress   *string `json:"pickupAddress" validate:"omitempty,max=2000"`
	DeliveryAddress *string `json:"deliveryAddress" validate:"omitempty,max=2000"`
	SpecialRequests *string `json:"specialRequests" validate:"omitempty,max=5000"`
}
