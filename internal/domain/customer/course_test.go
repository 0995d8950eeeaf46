package customer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

// TestCourseEndDate tests end-date derivation from duration/package tokens.
func TestCourseEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		courseType string
		token      string
		want       time.Time
		wantErr    error
	}{
		{"monthly 1 month", customer.CourseMonthly, "1 เดือน", time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), nil},
		{"monthly 3 months", customer.CourseMonthly, "3 เดือน", time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC), nil},
		{"monthly 12 months", customer.CourseMonthly, "12 เดือน", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), nil},
		{"package 10/2", customer.CoursePerSession, "10 ครั้ง / 2 เดือน", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil},
		{"package 30/6", customer.CoursePerSession, "30 ครั้ง / 6 เดือน", time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), nil},
		{"monthly token without month word", customer.CourseMonthly, "30 วัน", time.Time{}, customer.ErrUnresolvableEndDate},
		{"package without month bound", customer.CoursePerSession, "10 ครั้ง", time.Time{}, customer.ErrUnresolvableEndDate},
		{"unknown course type", "weekly", "1 เดือน", time.Time{}, customer.ErrInvalidCourseType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := customer.CourseEndDate(start, tt.courseType, tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CourseEndDate() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("CourseEndDate() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("zero start date", func(t *testing.T) {
		_, err := customer.CourseEndDate(time.Time{}, customer.CourseMonthly, "1 เดือน")
		if !errors.Is(err, customer.ErrUnresolvableEndDate) {
			t.Errorf("CourseEndDate(zero start) = %v, want ErrUnresolvableEndDate", err)
		}
	})
}

// TestPackageSessions tests parsing of the leading session count.
func TestPackageSessions(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"10 ครั้ง / 2 เดือน", 10},
		{"20 ครั้ง / 4 เดือน", 20},
		{"30 ครั้ง / 6 เดือน", 30},
		{"1 เดือน", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := customer.PackageSessions(tt.token); got != tt.want {
			t.Errorf("PackageSessions(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}
