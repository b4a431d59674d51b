package job

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewayJob_Execute(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		fmt.Fprint(w, `{"accepted":true,"queue_position":3}`)
	}))
	t.Cleanup(ts.Close)

	j := NewGatewayJob("gateway", ts.URL, "kborch", testLogger())

	result, err := j.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/jobs" {
		t.Errorf("request = %s %s, want POST /jobs", gotMethod, gotPath)
	}
	if gotBody["job_id"] != "gateway" {
		t.Errorf("job_id = %v, want gateway", gotBody["job_id"])
	}
	payload, _ := gotBody["payload"].(map[string]any)
	if payload["source"] != "kborch" {
		t.Errorf("payload.source = %v, want kborch", payload["source"])
	}

	// The response passes through without interpretation.
	resultMap, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result = %T, want map", result)
	}
	if resultMap["accepted"] != true {
		t.Errorf("result.accepted = %v, want true", resultMap["accepted"])
	}
}

func TestGatewayJob_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "executor offline", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	j := NewGatewayJob("gateway", ts.URL, "kborch", testLogger())
	if _, err := j.Execute(context.Background()); err == nil {
		t.Fatal("Execute succeeded against a failing gateway")
	}
}

func TestGatewayJob_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	j := NewGatewayJob("gateway", url, "kborch", testLogger())
	if _, err := j.Execute(context.Background()); err == nil {
		t.Fatal("Execute succeeded against a closed gateway")
	}
}
