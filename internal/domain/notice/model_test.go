package notice_test

import (
	"errors"
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/notice"
)

// TestNoticeValidation tests validation of Notice.
func TestNoticeValidation(t *testing.T) {
	tests := []struct {
		name    string
		notice  notice.Notice
		wantErr error
	}{
		{"valid", notice.Notice{Title: "ปิดปรับปรุง", Content: "ยิมปิดวันศุกร์", Color: notice.ColorOrange}, nil},
		{"empty title", notice.Notice{Title: " ", Content: "x", Color: notice.ColorBlue}, notice.ErrEmptyTitle},
		{"empty content", notice.Notice{Title: "x", Content: "", Color: notice.ColorBlue}, notice.ErrEmptyContent},
		{"bad color", notice.Notice{Title: "x", Content: "y", Color: "purple"}, notice.ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.notice.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestNoticePublish tests the draft-to-published transition.
func TestNoticePublish(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	n := notice.Notice{Status: notice.StatusDraft, Title: "x", Content: "y", Color: notice.ColorGreen}
	if err := n.Publish(now); err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}
	if !n.IsPublished() || !n.PublishedAt.Equal(now) {
		t.Errorf("after publish: status=%s publishedAt=%v", n.Status, n.PublishedAt)
	}

	if err := n.Publish(now); !errors.Is(err, notice.ErrAlreadyPublished) {
		t.Errorf("second Publish() = %v, want ErrAlreadyPublished", err)
	}
}
