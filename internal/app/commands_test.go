package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTickCmd(t *testing.T) {
	if tickCmd(time.Millisecond) == nil {
		t.Error("tickCmd returned nil")
	}
	if defaultTickCmd() == nil {
		t.Error("defaultTickCmd returned nil")
	}
}

func TestNotifyCmds(t *testing.T) {
	tests := []struct {
		name         string
		fn           func(string) tea.Cmd
		wantType     NotificationType
		wantDuration time.Duration
	}{
		{"Success", notifySuccessCmd, NotificationSuccess, DefaultNotificationDuration},
		{"Error", notifyErrorCmd, NotificationError, LongNotificationDuration},
		{"Warning", notifyWarningCmd, NotificationWarning, DefaultNotificationDuration},
		{"Info", notifyInfoCmd, NotificationInfo, QuickNotificationDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.wantType)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration != tt.wantDuration {
				t.Errorf("Duration = %v, want %v", addMsg.Duration, tt.wantDuration)
			}
		})
	}
}

func TestClearNotificationCmd(t *testing.T) {
	cmd := clearNotificationCmd("note-1", time.Millisecond)
	if cmd == nil {
		t.Fatal("clearNotificationCmd returned nil")
	}

	msg := cmd()
	removeMsg, ok := msg.(RemoveNotificationMsg)
	if !ok {
		t.Fatalf("Expected RemoveNotificationMsg, got %T", msg)
	}
	if removeMsg.ID != "note-1" {
		t.Errorf("ID = %s, want note-1", removeMsg.ID)
	}
}

func TestDelayedCmd(t *testing.T) {
	cmd := delayedCmd(time.Millisecond, TickMsg{})
	if cmd == nil {
		t.Fatal("delayedCmd returned nil")
	}

	msg := cmd()
	if _, ok := msg.(TickMsg); !ok {
		t.Errorf("Expected TickMsg, got %T", msg)
	}
}
