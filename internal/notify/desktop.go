package notify

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
)

// SendDesktop raises an OS desktop notification. Used as the fallback when
// no tmux client is attached to show a popup on.
func SendDesktop(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}

// SendNtfy pushes a notification to an ntfy topic. Best-effort push for
// operators away from the machine; callers log failures and move on.
func SendNtfy(url, topic, title, message string) error {
	endpoint := strings.TrimRight(url, "/") + "/" + topic
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBufferString(message))
	if err != nil {
		return fmt.Errorf("failed to build ntfy request: %w", err)
	}
	req.Header.Set("Title", title)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ntfy push failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy push failed: %s", resp.Status)
	}
	return nil
}
