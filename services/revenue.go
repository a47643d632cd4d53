package services

import (
	"bytes"
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"github.com/phpdave11/gofpdf"
	"gorm.io/gorm"
)

// RevenuePeriod echoes the requested date range. Nil bounds mean
// all-time.
type RevenuePeriod struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type RevenueReport struct {
	TotalRevenue float64       `json:"totalRevenue"`
	Period       RevenuePeriod `json:"period"`
}

// ComputeRevenue sums the grand total of the hotel's completed
// bookings. When both bounds are given the booking's creation timestamp
// must fall within [start, end] inclusive; otherwise every completed
// booking counts. An empty result is 0, never an error.
func ComputeRevenue(hotelID uint, bookings []models.Booking, start, end *time.Time) float64 {
	var total float64
	for i := range bookings {
		b := &bookings[i]
		if b.HotelID != hotelID {
			continue
		}
		if b.Payment.PaymentStatus != models.PaymentCompleted {
			continue
		}
		if start != nil && end != nil {
			if b.CreatedAt.Before(*start) || b.CreatedAt.After(*end) {
				continue
			}
		}
		total += b.Amount.GrandTotal
	}
	return total
}

type RevenueService struct {
	DB *gorm.DB
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{DB: db}
}

// ForHotel loads the hotel's booking snapshot and aggregates it.
func (s *RevenueService) ForHotel(hotelID uint, start, end *time.Time) (RevenueReport, error) {
	var bookings []models.Booking
	if err := s.DB.Where("hotel_id = ?", hotelID).Find(&bookings).Error; err != nil {
		return RevenueReport{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	return RevenueReport{
		TotalRevenue: ComputeRevenue(hotelID, bookings, start, end),
		Period:       RevenuePeriod{StartDate: start, EndDate: end},
	}, nil
}

// BuildPDF renders the revenue report as a one-page PDF for download.
func (s *RevenueService) BuildPDF(hotel models.Hotel, report RevenueReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Revenue Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "REVENUE REPORT")
	pdf.Ln(12)

	formatBound := func(t *time.Time) string {
		if t == nil {
			return "all time"
		}
		return t.Format("2006-01-02")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Hotel         : %s", hotel.Name),
		fmt.Sprintf("Address       : %s", hotel.Address),
		fmt.Sprintf("Period        : %s - %s", formatBound(report.Period.StartDate), formatBound(report.Period.EndDate)),
		fmt.Sprintf("Generated     : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Total revenue : %.2f", report.TotalRevenue),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Only bookings with completed payment are included. Date bounds filter on booking creation time, inclusive.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("revenue-%d-%s.pdf", hotel.ID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
