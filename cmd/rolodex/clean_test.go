package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCommand_AnalyticsDeliveredBeforeReturn(t *testing.T) {
	posted := make(chan int, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		posted <- len(batch)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	viper.Set("analytics.endpoint", server.URL)
	defer viper.Set("analytics.endpoint", "")

	input := writeContactsCSV(t, t.TempDir(), "contacts.csv")

	cmd := cleanCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{input, "--analytics"})
	require.NoError(t, cmd.Execute())

	// The command waits for the in-flight submission, so the POST has
	// already landed by the time Execute returns.
	select {
	case n := <-posted:
		assert.Equal(t, 1, n)
	default:
		t.Fatal("clean returned before the analytics POST was delivered")
	}
}

func TestWaitForAnalytics(t *testing.T) {
	// A nil channel means no submission was started.
	waitForAnalytics(context.Background(), nil)

	done := make(chan struct{})
	close(done)
	waitForAnalytics(context.Background(), done)

	// A canceled context bounds the wait on a submission that never ends.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	waitForAnalytics(ctx, make(chan struct{}))
	assert.Less(t, time.Since(start), time.Second)
}
