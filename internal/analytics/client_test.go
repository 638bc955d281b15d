package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContacts() []*model.Contact {
	return []*model.Contact{
		model.NewContact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "jane@example.com",
		}),
		model.NewContact(map[string]string{
			model.FieldFirstName: "John",
		}),
	}
}

func TestAnalyze(t *testing.T) {
	var received []map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"summary": map[string]int{
				"total_contacts": 2,
				"missing_names":  0,
				"missing_emails": 1,
				"missing_phones": 2,
				"duplicates":     0,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	summary, err := client.Analyze(context.Background(), testContacts())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalContacts)
	assert.Equal(t, 1, summary.MissingEmails)
	assert.Equal(t, 2, summary.MissingPhones)

	require.Len(t, received, 2, "raw field maps are posted as a JSON array")
	assert.Equal(t, "jane@example.com", received[0][model.FieldEmail])
}

func TestAnalyze_ServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "malformed contact batch",
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Analyze(context.Background(), testContacts())
	assert.ErrorIs(t, err, common.ErrAnalyticsUnavailable)
	assert.Contains(t, err.Error(), "malformed contact batch")
}

func TestAnalyze_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Analyze(context.Background(), testContacts())
	assert.ErrorIs(t, err, common.ErrAnalyticsUnavailable)
}

func TestSubmitAsync_SignalsCompletion(t *testing.T) {
	posted := make(chan int, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		posted <- len(batch)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	done := NewClient(server.URL).SubmitAsync(testContacts())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not finish")
	}

	select {
	case n := <-posted:
		assert.Equal(t, 2, n, "the POST must land before done closes")
	default:
		t.Fatal("done closed before the server saw the POST")
	}
}

func TestSubmitAsync_ClosesDoneOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	done := NewClient(server.URL).SubmitAsync(testContacts())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("done must close even when the submission fails")
	}
}

func TestAnalyze_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL).Analyze(context.Background(), testContacts())
	assert.ErrorIs(t, err, common.ErrAnalyticsUnavailable)
}
