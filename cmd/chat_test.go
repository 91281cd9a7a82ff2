package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func runChat(t *testing.T, input string, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetArgs(append([]string{"chat"}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(input))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("chat error = %v\noutput:\n%s", err, out.String())
	}
	// Let any pending follow-up injections land before reading the output.
	time.Sleep(200 * time.Millisecond)
	return out.String()
}

func TestChatCommand_QuestionAndQuit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "It is Paris"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "qabot.db")
	output := runChat(t, "What is the capital of France?\n/quit\n",
		"--store", path,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--endpoint", server.URL,
	)

	if !strings.Contains(output, "It is Paris") {
		t.Errorf("output missing answer:\n%s", output)
	}
	if !strings.Contains(output, "What is the capital of France?") {
		t.Errorf("output missing echoed question:\n%s", output)
	}
}

func TestChatCommand_HistoryCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "an answer"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "qabot.db")
	output := runChat(t, "first question\n/history\n/quit\n",
		"--store", path,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--endpoint", server.URL,
	)

	// The live conversation shows up in /history, marked as current.
	if !strings.Contains(output, "* qa_bot_session_") {
		t.Errorf("output missing current-session marker:\n%s", output)
	}
}

func TestChatCommand_UnknownSlashCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "unused"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "qabot.db")
	output := runChat(t, "/bogus\n/quit\n",
		"--store", path,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--endpoint", server.URL,
	)

	if !strings.Contains(output, "Unknown command /bogus") {
		t.Errorf("output missing unknown-command notice:\n%s", output)
	}
}
