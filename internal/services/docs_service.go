package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// DocsService renders the booking confirmation PDF.
type DocsService struct {
	Bookings  BookingService
	Schedules ScheduleService
	RequestID string
	Loader    func(ctx context.Context, bookingID string) (ticketData, error)
}

type ticketData struct {
	Booking  models.Booking
	Schedule models.Schedule
	Route    models.Route
}

func (s DocsService) GenerateTicket(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", "ticket rendered", zap.String("booking_id", bookingID))
	return buildTicketPDF(data)
}

func (s DocsService) load(ctx context.Context, bookingID string) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	var out ticketData
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return out, err
	}
	out.Booking = b

	sch, err := s.Schedules.GetSchedule(ctx, b.ScheduleID)
	if err != nil && !domain.IsNotFound(err) {
		return out, err
	}
	out.Schedule = sch

	if sch.RouteID != "" {
		rt, err := s.Schedules.GetRoute(ctx, sch.RouteID)
		if err != nil && !domain.IsNotFound(err) {
			return out, err
		}
		out.Route = rt
	}
	return out, nil
}

func buildTicketPDF(d ticketData) ([]byte, string, error) {
	b := d.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking confirmation", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : %s", b.ID),
		fmt.Sprintf("Customer     : %s", utils.Fallback(b.CustomerName, "-")),
		fmt.Sprintf("Email        : %s", utils.Fallback(b.CustomerEmail, "-")),
		fmt.Sprintf("Phone        : %s", utils.Fallback(b.CustomerPhone, "-")),
		fmt.Sprintf("Route        : %s -> %s", utils.Fallback(d.Route.FromCity, "-"), utils.Fallback(d.Route.ToCity, "-")),
		fmt.Sprintf("Departure    : %s", formatWhen(d.Schedule.DepartureTime)),
		fmt.Sprintf("Arrival      : %s", formatWhen(d.Schedule.ArrivalTime)),
		fmt.Sprintf("Vehicle      : %s", utils.Fallback(d.Schedule.VehicleType, "-")),
		fmt.Sprintf("Service      : %s", serviceLine(b)),
	}
	if b.PickupAddress != nil {
		lines = append(lines, fmt.Sprintf("Pickup       : %s", *b.PickupAddress))
	}
	if b.DeliveryAddress != nil {
		lines = append(lines, fmt.Sprintf("Delivery     : %s", *b.DeliveryAddress))
	}
	lines = append(lines,
		fmt.Sprintf("Booking      : %s", b.BookingStatus),
		fmt.Sprintf("Payment      : %s", b.PaymentStatus),
	)
	for _, s := range lines {
		pdf.Cell(0, 7, tr(foldForPDF(s)))
		pdf.Ln(7)
	}

	if len(b.PassengerNames) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Passengers:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		for i, n := range b.PassengerNames {
			pdf.Cell(0, 7, tr(foldForPDF(fmt.Sprintf("%d) %s", i+1, n))))
			pdf.Ln(7)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", b.TotalPrice, domain.Currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BOOKING_%s_%s.pdf", utils.SafeFilenamePart(shortID(b.ID)), utils.SafeFilenamePart(b.CustomerName))
	return buf.Bytes(), filename, nil
}

func serviceLine(b models.Booking) string {
	switch domain.ServiceType(b.ServiceType) {
	case domain.ServicePassenger:
		n := 1
		if b.PassengerCount != nil {
			n = *b.PassengerCount
		}
		return "passenger x" + strconv.Itoa(n)
	case domain.ServicePackage:
		w := "-"
		if b.PackageWeight != nil {
			w = b.PackageWeight.String()
		}
		return "package " + w + " kg"
	case domain.ServiceCar:
		parts := []string{}
		for _, p := range []*string{b.CarMake, b.CarModel, b.CarPlateNumber} {
			if p != nil && strings.TrimSpace(*p) != "" {
				parts = append(parts, *p)
			}
		}
		if len(parts) == 0 {
			return "car"
		}
		return "car " + strings.Join(parts, " ")
	}
	return b.ServiceType
}

// cp1252 has no breve or comma-below letters, so they are drawn as their base letter.
var cp1252Fold = strings.NewReplacer(
	"ă", "a", "Ă", "A",
	"ș", "s", "Ș", "S", "ş", "s", "Ş", "S",
	"ț", "t", "Ț", "T", "ţ", "t", "Ţ", "T",
)

func foldForPDF(s string) string {
	return cp1252Fold.Replace(s)
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return utils.FormatDateTime(t) + " UTC"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
