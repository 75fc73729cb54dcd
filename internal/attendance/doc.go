// Package attendance tracks employee clock-in and clock-out times in
// the log_absensi table, keyed by the employee registration number.
package attendance
