package backend

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// employeeIDPattern matches employee identifiers like E001 in a sub-query.
var employeeIDPattern = regexp.MustCompile(`(?i)\bE\d+\b`)

// AttendanceRecord is one row of the attendance table.
type AttendanceRecord struct {
	EmpID  string `db:"emp_id"`
	Day    string `db:"day"`
	Status string `db:"status"`
}

// AttendanceDB answers attendance sub-queries from a SQL database.
type AttendanceDB struct {
	db *sqlx.DB
}

// NewAttendanceDB creates an AttendanceDB on an existing connection.
func NewAttendanceDB(db *sqlx.DB) *AttendanceDB {
	return &AttendanceDB{db: db}
}

// OpenAttendanceDB opens (or creates) a sqlite-backed attendance database.
func OpenAttendanceDB(path string) (*AttendanceDB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attendance db: %w", err)
	}
	return NewAttendanceDB(db), nil
}

// Close closes the underlying database connection.
func (a *AttendanceDB) Close() error {
	return a.db.Close()
}

// EnsureSchema creates the attendance table if it does not exist.
func (a *AttendanceDB) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS attendance (
			emp_id TEXT NOT NULL,
			day    TEXT NOT NULL,
			status TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create attendance table: %w", err)
	}
	return nil
}

// Insert adds attendance records.
func (a *AttendanceDB) Insert(ctx context.Context, records []AttendanceRecord) error {
	for _, r := range records {
		_, err := a.db.ExecContext(ctx,
			`INSERT INTO attendance (emp_id, day, status) VALUES (?, ?, ?)`,
			r.EmpID, r.Day, r.Status)
		if err != nil {
			return fmt.Errorf("failed to insert attendance record for %s: %w", r.EmpID, err)
		}
	}
	return nil
}

// ImportCSV loads attendance records from a CSV file with a header row of
// emp_id,day,status columns (in any order).
func (a *AttendanceDB) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open attendance csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read attendance csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"emp_id", "day", "status"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("attendance csv is missing column %q", required)
		}
	}

	var records []AttendanceRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read attendance csv row: %w", err)
		}
		records = append(records, AttendanceRecord{
			EmpID:  strings.TrimSpace(row[col["emp_id"]]),
			Day:    strings.TrimSpace(row[col["day"]]),
			Status: strings.TrimSpace(row[col["status"]]),
		})
	}

	if err := a.Insert(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Lookup extracts an employee ID from the sub-query and returns that
// employee's attendance rows formatted as a context fragment.
// Returns ErrNotFound when no ID is present or no rows match.
func (a *AttendanceDB) Lookup(ctx context.Context, query string) (string, error) {
	id := employeeIDPattern.FindString(query)
	if id == "" {
		return "", fmt.Errorf("no employee id in query: %w", ErrNotFound)
	}
	id = strings.ToUpper(id)

	var records []AttendanceRecord
	err := a.db.SelectContext(ctx, &records,
		`SELECT emp_id, day, status FROM attendance WHERE emp_id = ? ORDER BY day`, id)
	if err != nil {
		return "", fmt.Errorf("attendance lookup failed for %s: %w", id, err)
	}

	if len(records) == 0 {
		return "", fmt.Errorf("employee id %s not found: %w", id, ErrNotFound)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Attendance records for employee %s:\n", id)
	for _, r := range records {
		fmt.Fprintf(&b, "- %s: %s\n", r.Day, r.Status)
	}
	return b.String(), nil
}

// Ensure AttendanceDB implements StructuredLookup.
var _ StructuredLookup = (*AttendanceDB)(nil)
