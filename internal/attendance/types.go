package attendance

import (
	"errors"
	"time"
)

// Record is one employee attendance entry: a check-in and, once the
// employee leaves, a check-out. NIP is the employee registration number
// (nomor induk pegawai); Date is the local calendar day in YYYY-MM-DD.
type Record struct {
	ID        int64      `json:"id"`
	NIP       string     `json:"nip"`
	Date      string     `json:"tanggal"`
	ClockIn   *time.Time `json:"jam_masuk,omitempty"`
	ClockOut  *time.Time `json:"jam_keluar,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Sentinel errors for the attendance log.
var (
	// ErrRecordNotFound indicates the requested attendance record does
	// not exist.
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrAlreadyCheckedIn indicates a second check-in for the same NIP
	// on the same day.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrAlreadyCheckedOut indicates a check-out against a record that
	// already has a clock-out time.
	ErrAlreadyCheckedOut = errors.New("already checked out")
)
