// Package client provides commands that drive a running tracker over its
// HTTP API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

var (
	// Connection flags
	serverURL string
	grpcAddr  string
	token     string
	timeout   time.Duration

	sessionID string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Drive a running tracker",
	Long:  `Client commands call the tracker's HTTP API, stream its events and run an interactive terminal view.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "HTTP API base URL")
	ClientCmd.PersistentFlags().StringVar(&grpcAddr, "grpc", "localhost:50051", "gRPC health address")
	ClientCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (HS256 JWT)")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&sessionID, "session", "", "tracker session ID")

	ClientCmd.AddCommand(healthCmd)

	// Session commands
	ClientCmd.AddCommand(openCmd)
	ClientCmd.AddCommand(showCmd)
	ClientCmd.AddCommand(loadCmd)
	ClientCmd.AddCommand(closeCmd)
	ClientCmd.AddCommand(campaignCmd)

	// Combatant and combat commands
	ClientCmd.AddCommand(addCmd)
	ClientCmd.AddCommand(removeCmd)
	ClientCmd.AddCommand(hpCmd)
	ClientCmd.AddCommand(initiativeCmd)
	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(nextCmd)
	ClientCmd.AddCommand(resetCmd)
	ClientCmd.AddCommand(moveCmd)

	// Status and roster commands
	ClientCmd.AddCommand(statusesCmd)
	ClientCmd.AddCommand(rosterCmd)

	ClientCmd.AddCommand(watchCmd)
	ClientCmd.AddCommand(tuiCmd)
}

// apiError is a non-2xx response decoded from the server's error body
type apiError struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func (e *apiError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	var parts []string
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(msgs, ", ")))
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, "; "))
}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(serverURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON and decodes a successful response into out. Either
// may be nil.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = "unreadable error body"
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func sessionPath(suffix string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("--session is required")
	}
	return "/v1/sessions/" + sessionID + suffix, nil
}

// call runs one request against the current session under the --timeout
func call(method, suffix string, body, out any) error {
	path, err := sessionPath(suffix)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return newAPIClient().do(ctx, method, path, body, out)
}

// callAndPrint runs call with a snapshot response and prints it
func callAndPrint(method, suffix string, body any) error {
	var snap initiative.Snapshot
	if err := call(method, suffix, body, &snap); err != nil {
		return err
	}
	printSnapshot(&snap)
	return nil
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

func printSnapshot(snap *initiative.Snapshot) {
	fmt.Printf("Session: %s\n", snap.SessionID)
	if snap.CampaignID != "" {
		fmt.Printf("Campaign: %s\n", snap.CampaignID)
	}
	if snap.Running {
		fmt.Printf("Round %d, turn %d, %ds elapsed\n", snap.RoundNumber, snap.CurrentTurnIndex+1, snap.ElapsedSeconds)
	} else {
		fmt.Printf("Combat not started\n")
	}

	if len(snap.Combatants) == 0 {
		fmt.Printf("\nNo combatants\n")
		return
	}

	fmt.Printf("\n")
	for i, c := range snap.Combatants {
		marker := "  "
		if snap.Running && i == snap.CurrentTurnIndex {
			marker = "> "
		}
		fmt.Printf("%s%-3d %-20s HP %d/%d  AC %d  [%s] %s\n",
			marker, c.InitiativeValue, c.Name, c.CurrentHP, c.MaxHP, c.ArmorClass, c.CharacterType, c.ID)
		for _, st := range c.Statuses {
			line := fmt.Sprintf("      - %s (%s)", st.Type.Name, st.ID)
			if st.Duration != nil {
				line += fmt.Sprintf(" %d rounds", *st.Duration)
			}
			fmt.Println(line)
		}
	}
}
