package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestJSONSinkWritesPartitionedNDJSON(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONSink(dir, "events")
	defer sink.Close()

	first := []byte(`{"analysis_id":"a1","analysis_type":"pbpk"}`)
	second := []byte(`{"analysis_id":"a2","analysis_type":"pbpk"}`)
	if err := sink.WriteMessage("analysis_pbpk", first); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := sink.WriteMessage("analysis_pbpk", second); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	now := time.Now().UTC()
	year, month, day := now.Date()
	path := filepath.Join(dir, "events", "analysis_pbpk",
		fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day), "data.json")

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("partition file missing: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var record map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Errorf("line %d is not valid JSON: %v", lines, err)
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 NDJSON lines, got %d", lines)
	}
}

func TestJSONSinkRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONSink(dir, "events")
	defer sink.Close()

	if err := sink.WriteMessage("analysis_pbpk", []byte(`{"broken":`)); err == nil {
		t.Fatal("expected error for invalid JSON payload")
	}
}

func TestConsoleSinkWriteMessage(t *testing.T) {
	sink := &ConsoleSink{}
	if err := sink.WriteMessage("analysis_pbpk", []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
