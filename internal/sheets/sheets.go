package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"labbot/internal/config"
	"labbot/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Service mirrors the bookings document into a Google Sheets spreadsheet.
// The sheet is a read-only copy for lab managers; the JSON file stays the
// source of truth.
type Service struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

// New builds a Service from a service-account credentials file. Extra client
// options override the default JWT client, which lets tests point the API at
// a local HTTP server.
func New(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Service, error) {
	if len(opts) == 0 {
		credentialsJSON, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %v", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %v", err)
		}

		opts = []option.ClientOption{option.WithHTTPClient(jwtConfig.Client(ctx))}
	}

	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	return &Service{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// TestConnection reads the header cell so startup can fail fast on bad
// credentials or a missing share.
func (s *Service) TestConnection(ctx context.Context) error {
	readRange := fmt.Sprintf("%s!A1", s.sheetName)
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// ServiceAccountEmail extracts client_email from a credentials file so
// operators know which account the spreadsheet must be shared with.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// ReplaceBookings clears the sheet body and rewrites it from the full
// document. Whole-sheet replacement keeps the mirror consistent with the
// whole-file write model of the store.
func (s *Service) ReplaceBookings(ctx context.Context, bookings []models.Booking) error {
	clearRange := fmt.Sprintf("%s!A2:Z", s.sheetName)
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear bookings sheet: %v", err)
	}

	values := [][]interface{}{
		{"ID", "Customer", "Date", "Time", "Lab Type", "Status", "Booked At"},
	}
	for _, booking := range bookings {
		values = append(values, []interface{}{
			booking.ID,
			booking.CustomerName,
			booking.Date,
			booking.Time,
			booking.LabType,
			booking.Status,
			booking.BookingTime.Format("2006-01-02 15:04:05"),
		})
	}

	valueRange := &sheetsapi.ValueRange{Values: values}
	writeRange := fmt.Sprintf("%s!A1", s.sheetName)

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update bookings sheet: %v", err)
	}
	return nil
}
