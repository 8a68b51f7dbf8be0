package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEventRecord_JSONRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []EventRecord{
		{Event: MessageAdded{Author: AuthorUser, Content: "hello"}, Timestamp: at},
		{Event: TitleChanged{NewTitle: "Greeting"}, Timestamp: at.Add(time.Second)},
		{Event: MessageAdded{Author: AuthorAssistant, Content: "hi"}, Timestamp: at.Add(2 * time.Second)},
	}

	b, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got []EventRecord
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i].Event != records[i].Event {
			t.Errorf("record %d: expected event %+v, got %+v", i, records[i].Event, got[i].Event)
		}
		if !got[i].Timestamp.Equal(records[i].Timestamp) {
			t.Errorf("record %d: timestamp mismatch", i)
		}
	}
}

func TestEventRecord_UnmarshalUnknownType(t *testing.T) {
	var rec EventRecord
	err := json.Unmarshal([]byte(`{"type":"conversation_deleted","timestamp":"2024-05-01T12:00:00Z","event":{}}`), &rec)
	if err == nil {
		t.Fatal("expected error for unknown event type")
	}
}
