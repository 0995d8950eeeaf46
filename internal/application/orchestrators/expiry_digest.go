package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/email"
	"github.com/supanat00/yaochaigym-data-record/internal/application/projections"
)

// ErrNoRecipient indicates no staff address is configured for the digest.
var ErrNoRecipient = errors.New("no digest recipient configured")

// SendExpiryDigestInput carries input for the expiry digest orchestrator.
type SendExpiryDigestInput struct {
	From  string    // sender address; empty falls back to the sender's default
	To    []string  // staff addresses receiving the digest
	Today time.Time // anchor date for the projection
}

// SendExpiryDigestResult carries the outcome of a digest send.
type SendExpiryDigestResult struct {
	NearExpiry int
	Expired    int
	MessageID  string
	Skipped    bool // true when no customer needed attention
}

// SendExpiryDigestDeps holds dependencies for SendExpiryDigest.
type SendExpiryDigestDeps struct {
	CustomerStore projections.CustomerStore
	Sender        email.Sender
}

// ExecuteSendExpiryDigest projects every customer against the anchor date
// and emails staff a digest of the rows that need attention. No email is
// sent when nothing is near expiry or expired.
// PRE: input.To has at least one address; input.Today is a UTC-midnight date
// POST: Digest sent when at least one customer needs attention
func ExecuteSendExpiryDigest(ctx context.Context, input SendExpiryDigestInput, deps SendExpiryDigestDeps) (SendExpiryDigestResult, error) {
	if len(input.To) == 0 {
		return SendExpiryDigestResult{}, ErrNoRecipient
	}

	list, err := projections.QueryGetCustomerList(ctx,
		projections.GetCustomerListQuery{Today: input.Today},
		projections.GetCustomerListDeps{CustomerStore: deps.CustomerStore})
	if err != nil {
		return SendExpiryDigestResult{}, err
	}

	var near, expired []projections.ProjectedCustomer
	for _, row := range list.Customers {
		switch row.Projection.Tier {
		case projections.TierWarning:
			near = append(near, row)
		case projections.TierExpired:
			expired = append(expired, row)
		}
	}

	result := SendExpiryDigestResult{NearExpiry: len(near), Expired: len(expired)}
	if len(near) == 0 && len(expired) == 0 {
		slog.Info("digest_event", "event", "digest_skipped", "reason", "nothing_to_report")
		result.Skipped = true
		return result, nil
	}

	subject := fmt.Sprintf("สรุปสมาชิกใกล้หมดอายุ %s", input.Today.Format("02/01/2006"))
	sent, err := deps.Sender.Send(ctx, email.SendRequest{
		From:    input.From,
		To:      input.To,
		Subject: subject,
		HTML:    renderDigestHTML(near, expired),
	})
	if err != nil {
		return result, err
	}

	result.MessageID = sent.MessageID
	slog.Info("digest_event", "event", "digest_sent",
		"near_expiry", len(near), "expired", len(expired), "message_id", sent.MessageID)
	return result, nil
}

// renderDigestHTML builds the digest body. Layout is deliberately plain;
// styling lives in the receiving mail client.
func renderDigestHTML(near, expired []projections.ProjectedCustomer) string {
	var b strings.Builder
	b.WriteString("<h2>สรุปสถานะสมาชิก</h2>")

	writeSection := func(title string, rows []projections.ProjectedCustomer) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "<h3>%s (%d)</h3><ul>", title, len(rows))
		for _, row := range rows {
			fmt.Fprintf(&b, "<li>%s — %s — %s — สิ้นสุด %s</li>",
				row.Customer.FullName,
				row.Customer.CourseType,
				row.Projection.StatusDisplay,
				row.Projection.FinalEndDateThai)
		}
		b.WriteString("</ul>")
	}

	writeSection("ใกล้หมดอายุ", near)
	writeSection("หมดอายุแล้ว", expired)
	return b.String()
}
