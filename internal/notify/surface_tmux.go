package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"claudeq/internal/tmuxc"
)

const (
	popupWidth  = 64
	popupHeight = 10
)

// tmuxSurface shows the notification as a tmux popup running the claudeq
// popup subcommand on the attached client. tmux allows one popup per client,
// which reinforces the single-active-notification invariant across
// processes; Show additionally closes any stale popup first.
type tmuxSurface struct {
	client *tmuxc.Client
	bin    string
	decide func(Decision)
	log    *logrus.Entry

	once sync.Once
}

// NewTmuxSurfaceFactory builds surfaces that display through tmux. bin is
// the claudeq executable to run inside the popup.
func NewTmuxSurfaceFactory(client *tmuxc.Client, bin string) SurfaceFactory {
	return func(decide func(Decision)) Surface {
		return &tmuxSurface{
			client: client,
			bin:    bin,
			decide: decide,
			log:    logrus.WithField("component", "notify"),
		}
	}
}

func (s *tmuxSurface) Show(n Notification) error {
	ctx := context.Background()
	s.client.ClosePopup(ctx)

	args := []string{
		s.bin, "popup",
		"--message", n.Message,
		"--session", n.SessionLabel,
		"--timeout", fmt.Sprintf("%d", int(n.Timeout.Seconds())),
	}
	go func() {
		// Blocks until the popup closes; the popup process executes any
		// chosen action itself, so only teardown remains here.
		if err := s.client.ShowPopup(ctx, popupWidth, popupHeight, args...); err != nil {
			s.log.WithError(err).Debug("popup ended with error")
		}
		s.decide(DecisionClosed)
	}()
	return nil
}

func (s *tmuxSurface) Close() error {
	s.once.Do(func() {
		s.client.ClosePopup(context.Background())
	})
	return nil
}
