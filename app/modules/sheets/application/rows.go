package sheetsservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
)

const (
	// ClearRange is wiped before every export.
	ClearRange = "Sheet1!A:Z"
	// WriteRange is where exports start writing, header first.
	WriteRange = "Sheet1!A1"
	// SheetName is the single worksheet used in XLSX downloads.
	SheetName = "Sheet1"
)

var RegistrationHeader = []any{
	"ID", "Name", "Email", "Phone", "Payment Amount", "Payment Status", "Table Preference",
	"Seat Preference", "Seat Assigned", "Quote", "Bio", "Involvement", "Image URL", "Created At",
}

var SeatingHeader = []any{
	"Table", "Seat", "Registration ID", "Name", "Email", "Quote", "Bio", "Involvement", "Image URL",
}

// seating sheet column positions, shared by export and sync
const (
	colTable = iota
	colSeat
	colRegistrationID
	colName
	colEmail
	colQuote
	colBio
	colInvolvement
	colImageURL
)

func registrationRows(regs []registrationdb.Registration) [][]any {
	rows := make([][]any, 0, len(regs)+1)
	rows = append(rows, RegistrationHeader)
	for _, r := range regs {
		rows = append(rows, []any{
			r.ID,
			r.Name,
			r.Email,
			r.Phone,
			r.PaymentAmount,
			r.PaymentStatus,
			intCell(r.TablePreference),
			intCell(r.SeatPreference),
			r.SeatAssignedStatus,
			strCell(r.Quote),
			strCell(r.Bio),
			strCell(r.Involvement),
			strCell(r.ImageURL),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func seatingRows(seats []seatingdb.Seat) [][]any {
	rows := make([][]any, 0, len(seats)+1)
	rows = append(rows, SeatingHeader)
	for _, s := range seats {
		row := []any{s.TableNumber, s.SeatNumber, "", "", "", "", "", "", ""}
		if s.RegistrationID != nil && s.Registration != nil {
			reg := s.Registration
			row[colRegistrationID] = *s.RegistrationID
			row[colName] = reg.Name
			row[colEmail] = reg.Email
			row[colQuote] = strCell(reg.Quote)
			row[colBio] = strCell(reg.Bio)
			row[colInvolvement] = strCell(reg.Involvement)
			row[colImageURL] = strCell(reg.ImageURL)
		}
		rows = append(rows, row)
	}
	return rows
}

func intCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func strCell(v *string) any {
	if v == nil {
		return ""
	}
	return *v
}

// syncRow is one parsed row of the sync sheet.
type syncRow struct {
	Table       int
	Seat        int
	Name        string
	Email       string
	Quote       *string
	Bio         *string
	Involvement *string
	ImageURL    *string
}

// SyncKey identifies a sheet-sourced guest across runs.
func SyncKey(name, email string) string {
	return "sheet:" + strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(email))
}

func parseSyncRow(cells []any) (syncRow, bool) {
	table, ok := positiveInt(cell(cells, colTable))
	if !ok {
		return syncRow{}, false
	}
	seat, ok := positiveInt(cell(cells, colSeat))
	if !ok {
		return syncRow{}, false
	}
	name := cell(cells, colName)
	if name == "" {
		return syncRow{}, false
	}
	return syncRow{
		Table:       table,
		Seat:        seat,
		Name:        name,
		Email:       cell(cells, colEmail),
		Quote:       optional(cell(cells, colQuote)),
		Bio:         optional(cell(cells, colBio)),
		Involvement: optional(cell(cells, colInvolvement)),
		ImageURL:    optional(cell(cells, colImageURL)),
	}, true
}

func cell(cells []any, i int) string {
	if i >= len(cells) || cells[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(cells[i]))
}

// positiveInt accepts "3" and the "3.0" some spreadsheets produce for numeric cells.
func positiveInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
