package record

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

func fptr(v float64) *float64 { return &v }

// CallSchema is the closed contract every persisted voice-channel record must
// satisfy. Text-channel records are exempt: they intentionally omit the
// hold/silence-ratio/interruption fields the schema requires.
var CallSchema = &jsonschema.Schema{
	Schema: "https://json-schema.org/draft/2020-12/schema",
	Title:  "BankingCall",
	Type:   "object",
	Required: []string{
		"call_id", "date", "weekday", "time_of_day_bucket", "agent_name", "team", "agent_shift",
		"customer_segment", "channel", "language", "region", "device_type",
		"intent", "scenario",
		"AWT", "Hold_time", "Transfers_count", "Silence_ratio", "Interruptions_count",
		"FCR", "repeat_call_within_72h", "escalation", "complaint_category",
		"NPS_score", "sentiment_score",
		"self_service_potential", "automation_action_present",
		"compliance_flags", "script_adherence",
		"Silence_total_seconds",
	},
	Properties: map[string]*jsonschema.Schema{
		"call_id":            {Type: "string", Format: "uuid"},
		"date":               {Type: "string", Format: "date"},
		"weekday":            {Type: "string", Enum: []any{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}},
		"time_of_day_bucket": {Type: "string", Enum: []any{"Night", "Morning", "Afternoon", "Evening"}},
		"agent_name": {Type: "string", Enum: []any{
			"Monika_Mueller", "Lukas_Schmidt", "Anna_Ziegler", "Peter_Keller",
			"Jasmin_Caggiano", "Heidi_Vogt", "Marco_Fischer", "Laura_Brunner",
			"Karin_Herzog", "Sven_Meier", "Nina_Weber", "Paul_Huber",
		}},
		"team":               {Type: "string", Enum: []any{"Team A", "Team B", "Team C"}},
		"agent_shift":        {Type: "string", Enum: []any{"Early", "Mid", "Late"}},
		"customer_segment":   {Type: "string", Enum: []any{"Premium", "Standard"}},
		"channel":            {Type: "string", Enum: []any{"voice", "text"}},
		"language":           {Type: "string", Pattern: "^[A-Za-z]{2}(-[A-Za-z]{2})?$"},
		"region":             {Type: "string", Enum: []any{"ZH", "BE", "GE", "VD", "TI"}},
		"device_type":        {Type: "string", Enum: []any{"iOS", "Android", "Desktop"}},
		"intent":             {Type: "string"},
		"scenario":           {Type: "string"},

		"AWT":                   {Type: "number", Minimum: fptr(0)},
		"Hold_time":             {Type: "number", Minimum: fptr(0)},
		"Transfers_count":       {Type: "integer", Minimum: fptr(0), Maximum: fptr(3)},
		"Silence_ratio":         {Type: "number", Minimum: fptr(0), Maximum: fptr(100)},
		"Silence_total_seconds": {Type: "number", Minimum: fptr(0)},
		"Interruptions_count":   {Type: "integer", Minimum: fptr(0)},
		"FCR":                   {Type: "boolean"},

		"repeat_call_within_72h": {Type: "boolean"},
		"escalation":             {Type: "string", Enum: []any{"None", "Supervisor", "Backoffice", "IT Ticket"}},
		"complaint_category":     {Type: "string", Enum: []any{"WaitTime", "Rude", "WrongInfo", "TechnicalIssue", "Fees"}},

		"NPS_score":       {Type: "integer", Minimum: fptr(0), Maximum: fptr(10)},
		"sentiment_score": {Type: "number", Minimum: fptr(-1), Maximum: fptr(1)},

		"product": {Types: []string{"string", "null"}},
		"amount_bucket": {AnyOf: []*jsonschema.Schema{
			{Type: "string", Enum: []any{"<100", "100–1000", "1000–5000", ">5000"}},
			{Type: "null"},
		}},

		"self_service_potential":    {Type: "string", Enum: []any{"Low", "Medium", "High"}},
		"automation_action_present": {Type: "boolean"},
		"automation_action_type": {AnyOf: []*jsonschema.Schema{
			{Type: "string", Enum: []any{"reset password", "check balance", "transfer status"}},
			{Type: "null"},
		}},

		"ANI": {Type: "string", Pattern: `^\+49\d{9,12}$`},

		"compliance_flags": {
			Type:     "object",
			Required: []string{"Greeting", "Empathy", "Summary", "Farewell"},
			Properties: map[string]*jsonschema.Schema{
				"Greeting": {Type: "string", Enum: []any{"pass", "fail"}},
				"Empathy":  {Type: "string", Enum: []any{"pass", "fail"}},
				"Summary":  {Type: "string", Enum: []any{"pass", "fail"}},
				"Farewell": {Type: "string", Enum: []any{"pass", "fail"}},
			},
		},
		"kb_article_used":     {Type: "boolean"},
		"language_switch":     {Type: "boolean"},
		"pii_disclosure_flag": {Type: "boolean"},
		"script_adherence":    {Type: "number", Minimum: fptr(0), Maximum: fptr(100)},
	},
}

// Validator validates assembled records against CallSchema. Resolve the
// schema once and reuse the validator across the whole run.
type Validator struct {
	resolved *jsonschema.Resolved
}

// NewValidator resolves CallSchema.
func NewValidator() (*Validator, error) {
	resolved, err := CallSchema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve call schema: %w", err)
	}
	return &Validator{resolved: resolved}, nil
}

// Validate checks one record against the schema. The record is round-tripped
// through JSON so validation sees exactly what will be persisted.
func (v *Validator) Validate(rec *CallRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var instance map[string]any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return v.resolved.Validate(instance)
}
