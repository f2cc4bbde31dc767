package feed

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sc-console-cli/internal/application"
	"github.com/bnema/sc-console-cli/internal/domain"
)

func renderView(snapshot application.FeedSnapshot, toast *domain.Event, now time.Time, s styles) string {
	lines := []string{renderHeader(snapshot, s)}

	if toast != nil {
		lines = append(lines, renderToast(*toast, s))
	}

	if len(snapshot.Events) == 0 {
		lines = append(lines, s.empty.Render("No notifications yet. Waiting for task events..."))
	}

	for _, event := range snapshot.Events {
		lines = append(lines, renderEvent(event, now, s))
	}

	lines = append(lines, s.hint.Render("v: mark viewed  c: clear all  q: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHeader(snapshot application.FeedSnapshot, s styles) string {
	title := s.title.Render("Task Notifications")
	count := s.header.Render(fmt.Sprintf("%d in feed", len(snapshot.Events)))

	parts := []string{title, " ", count}
	if snapshot.Unread > 0 {
		parts = append(parts, " ", s.badge.Render(fmt.Sprintf("%d new", snapshot.Unread)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderToast(event domain.Event, s styles) string {
	if event.Class == domain.ClassFailure {
		text := fmt.Sprintf("✗ %s failed", event.Label)
		if event.Error != "" {
			text += ": " + event.Error
		}
		return s.toastErr.Render(text)
	}

	text := fmt.Sprintf("✓ %s published", event.Label)
	if event.PostID > 0 {
		text += fmt.Sprintf(" (post %d)", event.PostID)
	}

	return s.toast.Render(text)
}

func renderEvent(event domain.Event, now time.Time, s styles) string {
	var marker string
	switch event.Class {
	case domain.ClassSuccess:
		marker = s.success.Render("✓")
	case domain.ClassFailure:
		marker = s.failure.Render("✗")
	default:
		marker = s.neutral.Render("•")
	}

	parts := []string{marker, " ", s.label.Render(event.Label)}
	if detail := eventDetail(event); detail != "" {
		parts = append(parts, " ", s.detail.Render(detail))
	}
	parts = append(parts, " ", s.detail.Render(formatAge(event.ReceivedAt, now)))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func eventDetail(event domain.Event) string {
	switch event.Class {
	case domain.ClassSuccess:
		if event.PostID > 0 {
			return fmt.Sprintf("published as post %d", event.PostID)
		}
		return "published"
	case domain.ClassFailure:
		if event.Error != "" {
			return event.Error
		}
		return "failed"
	default:
		return event.Kind
	}
}

func formatAge(receivedAt, now time.Time) string {
	if receivedAt.IsZero() || now.IsZero() {
		return ""
	}

	age := now.Sub(receivedAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return receivedAt.Format("02 Jan 15:04")
	}
}
