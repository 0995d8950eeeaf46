package customer

import (
	"regexp"
	"strconv"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// Package token patterns. Monthly durations look like "3 เดือน"; per-session
// packages look like "10 ครั้ง / 2 เดือน" where the part after the slash
// bounds the course in time.
var (
	monthPattern        = regexp.MustCompile(`(\d+)\s*เดือน`)
	packageMonthPattern = regexp.MustCompile(`/\s*(\d+)\s*เดือน`)
	sessionPattern      = regexp.MustCompile(`^(\d+)\s*ครั้ง`)
)

// CourseEndDate derives the original end date of a course from its start
// date and duration/package token. A course of N months runs N*30 days with
// the start day counted, so the end date is start + N*30 - 1 days.
// PRE: none
// POST: Returns the end date, or ErrUnresolvableEndDate when the start date
// is invalid or the token does not match the course type's pattern
func CourseEndDate(start time.Time, courseType, durationOrPackage string) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, ErrUnresolvableEndDate
	}
	var m []string
	switch courseType {
	case CourseMonthly:
		m = monthPattern.FindStringSubmatch(durationOrPackage)
	case CoursePerSession:
		m = packageMonthPattern.FindStringSubmatch(durationOrPackage)
	default:
		return time.Time{}, ErrInvalidCourseType
	}
	if m == nil {
		return time.Time{}, ErrUnresolvableEndDate
	}
	months, err := strconv.Atoi(m[1])
	if err != nil || months <= 0 {
		return time.Time{}, ErrUnresolvableEndDate
	}
	return dates.AddDays(start, months*30-1), nil
}

// PackageSessions parses the leading "<N> ครั้ง" of a per-session package
// token and returns the session count it grants, or 0 when absent.
func PackageSessions(durationOrPackage string) int {
	m := sessionPattern.FindStringSubmatch(durationOrPackage)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
