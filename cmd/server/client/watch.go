package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/notify"
)

var watchTicks bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the session's notifications",
	Long:  `Print success and error notifications as they happen. Clock ticks are hidden unless --ticks is set.`,
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchTicks, "ticks", false, "Also print clock ticks")
}

// eventsURL turns the HTTP base URL into the session's websocket endpoint
func eventsURL(base, sid string) string {
	u := strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/v1/sessions/" + sid + "/events"
}

func dialEvents(ctx context.Context, base, sid, bearer string) (*websocket.Conn, error) {
	header := http.Header{}
	if bearer != "" {
		header.Set("Authorization", "Bearer "+bearer)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, eventsURL(base, sid), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to open event stream: %s", resp.Status)
		}
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
	return conn, nil
}

func runWatch(_ *cobra.Command, _ []string) error {
	if sessionID == "" {
		return fmt.Errorf("--session is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	conn, err := dialEvents(dialCtx, serverURL, sessionID, token)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	go func() {
		<-ctx.Done()
		_ = conn.Close() // nolint:errcheck // unblocks ReadJSON
	}()

	fmt.Printf("Watching session %s (Ctrl+C to stop)\n", sessionID)
	for {
		var n notify.Notification
		if err := conn.ReadJSON(&n); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("event stream closed: %w", err)
		}
		if line := formatNotification(n, watchTicks); line != "" {
			fmt.Println(line)
		}
	}
}

func formatNotification(n notify.Notification, ticks bool) string {
	at := n.At.Format("15:04:05")
	switch n.Kind {
	case notify.KindSuccess:
		return fmt.Sprintf("%s  ok     %s", at, n.Message)
	case notify.KindError:
		return fmt.Sprintf("%s  error  %s (%s)", at, n.Message, n.Code)
	case notify.KindTick:
		if !ticks {
			return ""
		}
		return fmt.Sprintf("%s  tick   %ds", at, n.ElapsedSeconds)
	}
	return ""
}
