package cmd

import (
	"strings"
	"testing"
)

func TestReadNotifications(t *testing.T) {
	input := `{"package": "com.cibc.android.mobi", "title": "Purchase", "text": "Visa, 1234 CAFE $4.50"}

{"package": "ca.tangerine.clients.banking.app", "title": "Withdrawal made", "text": "", "big_text": "A withdrawal of $60.00 was made."}
`

	notes, err := readNotifications(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readNotifications() unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notifications, expected 2", len(notes))
	}
	if notes[0].Text != "Visa, 1234 CAFE $4.50" || notes[1].BigText != "A withdrawal of $60.00 was made." {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestReadNotificationsInvalidLine(t *testing.T) {
	input := "{\"package\": \"p\"}\nnot json\n"

	_, err := readNotifications(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("readNotifications() error = %v, expected a line 2 error", err)
	}
}
