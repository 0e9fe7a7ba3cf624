package record

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"synthcall/internal/config"
)

func fullRecord() *CallRecord {
	hold := 38.5
	silence := 8.25
	interruptions := 1
	product := "Transfer"
	amount := "100–1000"
	action := "reset password"
	return &CallRecord{
		CallID:          "0e6f9a2b-5b1c-4d6e-8f3a-7c2d1e0b9a84",
		Date:            "2024-01-05",
		Weekday:         "Fri",
		TimeOfDayBucket: "Morning",
		AgentName:       "Monika_Mueller",
		Team:            "Team A",
		AgentShift:      "Early",

		CustomerSegment: "Premium",
		Channel:         "voice",
		Language:        "DE",
		Region:          "ZH",
		DeviceType:      "iOS",

		Intent:   "Transfer",
		Scenario: "payment stuck",

		AWT:                 92.4,
		HoldTime:            &hold,
		TransfersCount:      1,
		SilenceRatio:        &silence,
		SilenceTotalSeconds: 14.3,
		InterruptionsCount:  &interruptions,
		FCR:                 true,

		RepeatCallWithin72h: false,
		Escalation:          "None",
		ComplaintCategory:   "Fees",

		NPSScore:       9,
		SentimentScore: 0.74,

		Product:      &product,
		AmountBucket: &amount,

		SelfServicePotential:    "Medium",
		AutomationActionPresent: true,
		AutomationActionType:    &action,

		ANI: "+49170123456",

		ComplianceFlags: map[string]string{
			"Greeting": "pass", "Empathy": "pass", "Summary": "fail", "Farewell": "pass",
		},
		KBArticleUsed:     true,
		LanguageSwitch:    false,
		PIIDisclosureFlag: false,
		ScriptAdherence:   88.5,
	}
}

func TestValidateVoiceRecord(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error: %v", err)
	}
	if err := v.Validate(fullRecord()); err != nil {
		t.Errorf("Validate(full voice record) = %v, want nil", err)
	}
}

func TestValidateRejectsBadRecords(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CallRecord)
	}{
		{"UnknownAgent", func(r *CallRecord) { r.AgentName = "Nobody_Nowhere" }},
		{"BadWeekday", func(r *CallRecord) { r.Weekday = "Friday" }},
		{"BadANI", func(r *CallRecord) { r.ANI = "0791234567" }},
		{"NPSAboveCap", func(r *CallRecord) { r.NPSScore = 11 }},
		{"NegativeAWT", func(r *CallRecord) { r.AWT = -5 }},
		{"BadEscalation", func(r *CallRecord) { r.Escalation = "CEO" }},
		{"BadComplianceFlag", func(r *CallRecord) { r.ComplianceFlags["Empathy"] = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fullRecord()
			tt.mutate(rec)
			if err := v.Validate(rec); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSuppressTextChannelFields(t *testing.T) {
	rec := fullRecord()
	rec.Channel = "text"
	rec.SuppressTextChannelFields()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"Hold_time", "Silence_ratio", "Interruptions_count"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("text record still serializes %s", field)
		}
	}
	if !strings.Contains(string(data), `"Silence_total_seconds"`) {
		t.Error("text record dropped Silence_total_seconds, want kept")
	}
}

func TestValidationErrorCarriesContext(t *testing.T) {
	cause := errors.New("NPS_score out of range")
	verr := &ValidationError{
		CallID: "abc", Date: "2024-01-05", Agent: "Paul_Huber", Bucket: "Evening", Index: 7,
		Err: cause,
	}
	msg := verr.Error()
	for _, want := range []string{"abc", "2024-01-05", "Paul_Huber", "Evening", "index=7"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !errors.Is(verr, cause) {
		t.Error("errors.Is() should reach the wrapped cause")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	rec := fullRecord()

	path, err := Write(dir, rec)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := filepath.Join(dir, "2024-01-05", rec.CallID+".json")
	if path != want {
		t.Errorf("Write() = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got CallRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.CallID != rec.CallID || got.ANI != rec.ANI {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestWriteMeta(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New(map[string]any{"volume": map[string]any{"base_weekday": 200}})

	if err := WriteMeta(dir, cfg); err != nil {
		t.Fatalf("WriteMeta() error: %v", err)
	}
	for _, name := range []string{"config_effective.json", "schema_call.json", "field_descriptions.json"} {
		path := filepath.Join(dir, MetaDirName, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !json.Valid(data) {
			t.Errorf("%s is not valid JSON", name)
		}
	}
}
