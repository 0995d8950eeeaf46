package projections

import (
	"sort"
	"strconv"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// Status values for a projected customer.
const (
	StatusActive            = "active"
	StatusNearExpiry        = "near_expiry"
	StatusExpiredByDate     = "expired_date"
	StatusExpiredBySessions = "expired_sessions"
	StatusUnknown           = "unknown"
)

// Tier values group statuses into display severities for row styling.
const (
	TierOK      = "ok"
	TierWarning = "warning"
	TierExpired = "expired"
	TierNone    = "none"
)

// Warning thresholds. A customer enters the attention band when the end
// date is this many raw days away, or when this many sessions remain.
const (
	NearExpiryDays     = 7
	NearExpirySessions = 3
)

// statusDisplay maps a status to its Thai dashboard label.
var statusDisplay = map[string]string{
	StatusActive:            "ใช้งาน",
	StatusNearExpiry:        "ใกล้หมดอายุ",
	StatusExpiredByDate:     "หมดอายุ (วัน)",
	StatusExpiredBySessions: "หมดอายุ (ครั้ง)",
	StatusUnknown:           "-",
}

// sessionWarningDisplay replaces the near-expiry label when the warning
// is driven by the session count rather than the end date.
const sessionWarningDisplay = "ใกล้หมด (ครั้ง)"

// sortPriority orders statuses attention-first. Lower sorts earlier.
var sortPriority = map[string]int{
	StatusNearExpiry:        0,
	StatusExpiredBySessions: 1,
	StatusExpiredByDate:     2,
	StatusActive:            3,
	StatusUnknown:           4,
}

// statusTier maps a status to its severity tier.
var statusTier = map[string]string{
	StatusActive:            TierOK,
	StatusNearExpiry:        TierWarning,
	StatusExpiredByDate:     TierExpired,
	StatusExpiredBySessions: TierExpired,
	StatusUnknown:           TierNone,
}

// Projection is the derived view of one customer against an anchor date.
// All fields are computed; nothing here is stored.
type Projection struct {
	Status        string
	StatusDisplay string
	Tier          string

	// FinalEndDate is the effective end date after the manual override
	// and compensation rules are applied. Zero when unresolvable.
	FinalEndDate         time.Time
	FinalEndDateISO      string
	FinalEndDateThai     string
	RemainingDaysRaw     int
	DaysValid            bool
	RemainingDaysDisplay string

	// Session fields are zero-valued for monthly customers.
	TotalRemainingSessions   int
	RemainingSessionsDisplay string
}

// ProjectedCustomer pairs a stored customer with its projection.
type ProjectedCustomer struct {
	Customer   customer.Customer
	Projection Projection
}

// Project derives the status view of one customer as of the anchor date.
// PRE: today is a UTC-midnight date
// POST: Returns a Projection; the customer is not mutated
// INVARIANT: Deterministic for the same (customer, today) pair
func Project(c customer.Customer, today time.Time) Projection {
	p := Projection{}

	p.FinalEndDate = resolveFinalEndDate(c)
	p.FinalEndDateISO = dates.FormatISO(p.FinalEndDate)
	p.FinalEndDateThai = dates.FormatDisplay(p.FinalEndDate)
	p.RemainingDaysRaw, p.DaysValid = dates.DiffDays(p.FinalEndDate, today)

	if c.IsPerSession() {
		p.TotalRemainingSessions = c.TotalSessions()
		p.RemainingSessionsDisplay = strconv.Itoa(p.TotalRemainingSessions)
		p.Status = perSessionStatus(p)
	} else {
		p.Status = monthlyStatus(p)
	}

	p.Tier = statusTier[p.Status]
	p.StatusDisplay = statusDisplay[p.Status]
	if p.Status == StatusNearExpiry && c.IsPerSession() &&
		(!p.DaysValid || p.RemainingDaysRaw > NearExpiryDays) {
		p.StatusDisplay = sessionWarningDisplay
	}
	p.RemainingDaysDisplay = remainingDaysDisplay(p)
	return p
}

// resolveFinalEndDate applies the end-date rules: a manual end date wins
// outright; otherwise compensation days extend the original end date.
func resolveFinalEndDate(c customer.Customer) time.Time {
	if !c.ManualEndDate.IsZero() {
		return c.ManualEndDate
	}
	if c.OriginalEndDate.IsZero() {
		return time.Time{}
	}
	return dates.AddDays(c.OriginalEndDate, c.TotalCompensationDays)
}

// monthlyStatus classifies a monthly customer purely by date distance.
func monthlyStatus(p Projection) string {
	if !p.DaysValid {
		return StatusUnknown
	}
	switch {
	case p.RemainingDaysRaw < 0:
		return StatusExpiredByDate
	case p.RemainingDaysRaw <= NearExpiryDays:
		return StatusNearExpiry
	default:
		return StatusActive
	}
}

// perSessionStatus classifies a per-session customer. Priority order:
// date elapsed, sessions exhausted, date warning, session warning, active.
func perSessionStatus(p Projection) string {
	if p.DaysValid && p.RemainingDaysRaw < 0 {
		return StatusExpiredByDate
	}
	if p.TotalRemainingSessions <= 0 {
		return StatusExpiredBySessions
	}
	if p.DaysValid && p.RemainingDaysRaw <= NearExpiryDays {
		return StatusNearExpiry
	}
	if p.TotalRemainingSessions <= NearExpirySessions {
		return StatusNearExpiry
	}
	if !p.DaysValid {
		return StatusUnknown
	}
	return StatusActive
}

// remainingDaysDisplay renders the day count inclusively: the expiry day
// itself still counts, so one raw day left shows as "2".
func remainingDaysDisplay(p Projection) string {
	if !p.DaysValid {
		return "-"
	}
	switch {
	case p.RemainingDaysRaw < 0:
		return "หมดอายุ"
	case p.RemainingDaysRaw == 0:
		return "หมดวันนี้"
	default:
		return strconv.Itoa(p.RemainingDaysRaw + 1)
	}
}

// Less is the canonical comparator for dashboard rows: attention-first by
// status, then soonest end date, then fewest sessions left.
func Less(a, b Projection) bool {
	pa, pb := sortPriority[a.Status], sortPriority[b.Status]
	if pa != pb {
		return pa < pb
	}
	if a.DaysValid != b.DaysValid {
		return a.DaysValid
	}
	if a.RemainingDaysRaw != b.RemainingDaysRaw {
		return a.RemainingDaysRaw < b.RemainingDaysRaw
	}
	return a.TotalRemainingSessions < b.TotalRemainingSessions
}

// SortProjected sorts rows in place using the canonical comparator,
// breaking full ties on customer name.
func SortProjected(rows []ProjectedCustomer) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Projection, rows[j].Projection
		if Less(a, b) {
			return true
		}
		if Less(b, a) {
			return false
		}
		return rows[i].Customer.FullName < rows[j].Customer.FullName
	})
}
