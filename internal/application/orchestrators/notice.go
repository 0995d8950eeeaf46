package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/notice"
)

// NoticeStore defines the store interface needed by notice orchestrators.
type NoticeStore interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
}

// ErrNoticeNotFound indicates the notice ID does not exist in the store.
var ErrNoticeNotFound = errors.New("notice not found")

// --- Create Notice ---

// CreateNoticeInput carries input for the create notice orchestrator.
type CreateNoticeInput struct {
	Title     string
	Content   string
	Color     string
	Pinned    bool
	CreatedBy string // account ID of the author
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a new notice in draft status.
// PRE: Title and Content must be non-empty; CreatedBy must be non-empty
// POST: Notice created in draft status with generated ID
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps CreateNoticeDeps) (notice.Notice, error) {
	if input.CreatedBy == "" {
		return notice.Notice{}, errors.New("creator account ID is required")
	}

	color := input.Color
	if color == "" {
		color = notice.ColorOrange
	}

	n := notice.Notice{
		ID:        deps.GenerateID(),
		Status:    notice.StatusDraft,
		Title:     input.Title,
		Content:   input.Content,
		Color:     color,
		Pinned:    input.Pinned,
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}

	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "created_by", input.CreatedBy)
	return n, nil
}

// --- Publish Notice ---

// PublishNoticeInput carries input for the publish notice orchestrator.
type PublishNoticeInput struct {
	NoticeID string
}

// PublishNoticeDeps holds dependencies for PublishNotice.
type PublishNoticeDeps struct {
	NoticeStore NoticeStore
	Now         func() time.Time
}

// ExecutePublishNotice publishes a draft notice.
// PRE: NoticeID must be non-empty; notice must exist and be in draft status
// POST: Notice status set to published, PublishedAt set
func ExecutePublishNotice(ctx context.Context, input PublishNoticeInput, deps PublishNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, ErrNoticeNotFound
	}

	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID)
	return n, nil
}

// --- Pin/Unpin Notice ---

// PinNoticeInput carries input for the pin/unpin notice orchestrator.
type PinNoticeInput struct {
	NoticeID string
	Pinned   bool // true = pin, false = unpin
}

// PinNoticeDeps holds dependencies for PinNotice.
type PinNoticeDeps struct {
	NoticeStore NoticeStore
}

// ExecutePinNotice pins or unpins a notice so pinned rows lead the board.
// PRE: NoticeID must be non-empty; notice must exist
// POST: Pinned flag updated
func ExecutePinNotice(ctx context.Context, input PinNoticeInput, deps PinNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, ErrNoticeNotFound
	}

	n.Pinned = input.Pinned

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	action := "notice_pinned"
	if !input.Pinned {
		action = "notice_unpinned"
	}
	slog.Info("notice_event", "event", action, "notice_id", n.ID)
	return n, nil
}

// --- Delete Notice ---

// DeleteNoticeInput carries input for the delete notice orchestrator.
type DeleteNoticeInput struct {
	NoticeID string
}

// DeleteNoticeDeps holds dependencies for DeleteNotice.
type DeleteNoticeDeps struct {
	NoticeStore NoticeStore
}

// ExecuteDeleteNotice removes a notice from the board permanently.
// PRE: NoticeID must be non-empty; notice must exist
// POST: Notice removed from the store
func ExecuteDeleteNotice(ctx context.Context, input DeleteNoticeInput, deps DeleteNoticeDeps) error {
	if input.NoticeID == "" {
		return errors.New("notice ID is required")
	}

	if _, err := deps.NoticeStore.GetByID(ctx, input.NoticeID); err != nil {
		return ErrNoticeNotFound
	}

	if err := deps.NoticeStore.Delete(ctx, input.NoticeID); err != nil {
		return err
	}

	slog.Info("notice_event", "event", "notice_deleted", "notice_id", input.NoticeID)
	return nil
}
