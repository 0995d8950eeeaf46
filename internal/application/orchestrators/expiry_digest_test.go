package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/email"
)

// mockSender captures sent emails for testing.
type mockSender struct {
	sent []email.SendRequest
	err  error
}

// Send implements email.Sender.
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-001", SentAt: time.Now()}, nil
}

// TestExecuteSendExpiryDigest tests the digest composition and send.
func TestExecuteSendExpiryDigest(t *testing.T) {
	store := newMockCustomerStore()
	store.customers["near"] = compCustomer("near", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	store.customers["expired"] = compCustomer("expired", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	store.customers["active"] = compCustomer("active", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))

	sender := &mockSender{}
	res, err := ExecuteSendExpiryDigest(context.Background(), SendExpiryDigestInput{
		To:    []string{"staff@example.com"},
		Today: fixedToday,
	}, SendExpiryDigestDeps{CustomerStore: store, Sender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NearExpiry != 1 || res.Expired != 1 {
		t.Errorf("counts = %d/%d, want 1 near and 1 expired", res.NearExpiry, res.Expired)
	}
	if res.MessageID != "msg-001" || res.Skipped {
		t.Errorf("result = %+v, want sent with message ID", res)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}

	body := sender.sent[0].HTML
	if !strings.Contains(body, "Customer near") || !strings.Contains(body, "Customer expired") {
		t.Errorf("digest body missing expected rows: %s", body)
	}
	if strings.Contains(body, "Customer active") {
		t.Error("active customer must not appear in the digest")
	}
}

// TestExecuteSendExpiryDigest_NothingToReport tests the skip path.
func TestExecuteSendExpiryDigest_NothingToReport(t *testing.T) {
	store := newMockCustomerStore()
	store.customers["active"] = compCustomer("active", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))

	sender := &mockSender{}
	res, err := ExecuteSendExpiryDigest(context.Background(), SendExpiryDigestInput{
		To:    []string{"staff@example.com"},
		Today: fixedToday,
	}, SendExpiryDigestDeps{CustomerStore: store, Sender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Error("expected Skipped=true when nothing needs attention")
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(sender.sent))
	}
}

// TestExecuteSendExpiryDigest_NoRecipient tests the configuration guard.
func TestExecuteSendExpiryDigest_NoRecipient(t *testing.T) {
	_, err := ExecuteSendExpiryDigest(context.Background(), SendExpiryDigestInput{
		Today: fixedToday,
	}, SendExpiryDigestDeps{CustomerStore: newMockCustomerStore(), Sender: &mockSender{}})
	if !errors.Is(err, ErrNoRecipient) {
		t.Errorf("expected ErrNoRecipient, got %v", err)
	}
}
