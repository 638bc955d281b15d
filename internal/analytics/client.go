// Package analytics submits raw contact records to an optional remote
// endpoint and reads back aggregate counts. Submission is best-effort: a
// failure is logged and never alters the local cleaning session.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// SummaryResponse carries the aggregate counts computed by the backend.
type SummaryResponse struct {
	TotalContacts int `json:"total_contacts"`
	MissingNames  int `json:"missing_names"`
	MissingEmails int `json:"missing_emails"`
	MissingPhones int `json:"missing_phones"`
	Duplicates    int `json:"duplicates"`
}

type analyzeResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Summary SummaryResponse `json:"summary"`
}

// Client talks to the analytics backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an analytics client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Analyze POSTs the raw field maps as a JSON array and decodes the
// aggregate summary.
func (c *Client) Analyze(ctx context.Context, contacts []*model.Contact) (*SummaryResponse, error) {
	payload := make([]map[string]string, 0, len(contacts))
	for _, contact := range contacts {
		payload = append(payload, contact.Fields)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contacts: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAnalyticsUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %d - %s", common.ErrAnalyticsUnavailable, resp.StatusCode, string(respBody))
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode analytics response: %w", err)
	}
	if decoded.Status != "success" {
		return nil, fmt.Errorf("%w: %s", common.ErrAnalyticsUnavailable, decoded.Message)
	}

	return &decoded.Summary, nil
}

// SubmitAsync fires a submission on its own goroutine with its own timeout.
// The result is logged either way; the caller never sees a failure. The
// returned channel closes when the submission finishes, so short-lived
// commands can wait for delivery before the process exits.
func (c *Client) SubmitAsync(contacts []*model.Contact) <-chan struct{} {
	records := make([]*model.Contact, len(contacts))
	copy(records, contacts)

	done := make(chan struct{})
	go func() {
		defer close(done)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		summary, err := c.Analyze(ctx, records)
		if err != nil {
			common.LogError(err, "Analytics submission failed", common.Fields{
				"records": len(records),
			})
			return
		}
		common.LogInfo("Analytics submission accepted", common.Fields{
			"total":      summary.TotalContacts,
			"duplicates": summary.Duplicates,
		})
	}()

	return done
}
