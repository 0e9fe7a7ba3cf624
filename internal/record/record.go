// Package record assembles, validates, and persists finished call records.
package record

import (
	"fmt"
)

// CallRecord is the finished, flat output for one simulated call. Nullable
// fields are pointers serialized as JSON null; the hold, silence-ratio, and
// interruption fields are pointers so the text channel can omit them
// entirely (a defined channel contract, not an error).
type CallRecord struct {
	CallID          string `json:"call_id"`
	Date            string `json:"date"`
	Weekday         string `json:"weekday"`
	TimeOfDayBucket string `json:"time_of_day_bucket"`
	AgentName       string `json:"agent_name"`
	Team            string `json:"team"`
	AgentShift      string `json:"agent_shift"`

	CustomerSegment string `json:"customer_segment"`
	Channel         string `json:"channel"`
	Language        string `json:"language"`
	Region          string `json:"region"`
	DeviceType      string `json:"device_type"`

	Intent   string `json:"intent"`
	Scenario string `json:"scenario"`

	AWT                 float64  `json:"AWT"`
	HoldTime            *float64 `json:"Hold_time,omitempty"`
	TransfersCount      int      `json:"Transfers_count"`
	SilenceRatio        *float64 `json:"Silence_ratio,omitempty"`
	SilenceTotalSeconds float64  `json:"Silence_total_seconds"`
	InterruptionsCount  *int     `json:"Interruptions_count,omitempty"`
	FCR                 bool     `json:"FCR"`

	RepeatCallWithin72h bool   `json:"repeat_call_within_72h"`
	Escalation          string `json:"escalation"`
	ComplaintCategory   string `json:"complaint_category"`

	NPSScore       int     `json:"NPS_score"`
	SentimentScore float64 `json:"sentiment_score"`

	Product      *string `json:"product"`
	AmountBucket *string `json:"amount_bucket"`

	SelfServicePotential    string  `json:"self_service_potential"`
	AutomationActionPresent bool    `json:"automation_action_present"`
	AutomationActionType    *string `json:"automation_action_type"`

	ANI string `json:"ANI"`

	ComplianceFlags   map[string]string `json:"compliance_flags"`
	KBArticleUsed     bool              `json:"kb_article_used"`
	LanguageSwitch    bool              `json:"language_switch"`
	PIIDisclosureFlag bool              `json:"pii_disclosure_flag"`
	ScriptAdherence   float64           `json:"script_adherence"`
}

// SuppressTextChannelFields removes the fields the text channel does not
// carry: hold time, silence ratio, and interruption count. Total silence
// stays; it is measured for chat transcripts too.
func (r *CallRecord) SuppressTextChannelFields() {
	r.HoldTime = nil
	r.SilenceRatio = nil
	r.InterruptionsCount = nil
}

// ValidationError reports a schema failure for a single record, with enough
// call context to re-derive the exact failing draw.
type ValidationError struct {
	CallID string
	Date   string
	Agent  string
	Bucket string
	Index  int
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %s (date=%s agent=%s bucket=%s index=%d) failed schema validation: %v",
		e.CallID, e.Date, e.Agent, e.Bucket, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
