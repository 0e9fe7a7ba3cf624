package record

// FieldDescriptions documents every record field in English and German. The
// map is written to the run's metadata directory for downstream consumers.
var FieldDescriptions = map[string]map[string]string{
	"call_id": {
		"en": "Unique identifier (UUID) of the call record.",
		"de": "Eindeutige Kennung (UUID) des Anrufsatzes.",
	},
	"date": {
		"en": "Call date in ISO format (YYYY-MM-DD).",
		"de": "Anrufdatum im ISO-Format (JJJJ-MM-TT).",
	},
	"weekday": {
		"en": "Three-letter weekday of the call (Mon..Sun).",
		"de": "Wochentag des Anrufs (Mon..Sun).",
	},
	"time_of_day_bucket": {
		"en": "Time-of-day bucket: Night, Morning, Afternoon, or Evening.",
		"de": "Tageszeitfenster: Night, Morning, Afternoon oder Evening.",
	},
	"agent_name": {
		"en": "Name of the handling agent.",
		"de": "Name des bearbeitenden Agents.",
	},
	"team": {
		"en": "Agent team assignment.",
		"de": "Teamzugehörigkeit des Agents.",
	},
	"agent_shift": {
		"en": "Shift during which the call was handled: Early, Mid, Late.",
		"de": "Schicht des Anrufs: Early, Mid, Late.",
	},
	"customer_segment": {
		"en": "Customer segment (Premium or Standard).",
		"de": "Kundensegment (Premium oder Standard).",
	},
	"channel": {
		"en": "Interaction channel: voice (audio) or text (chat/messaging).",
		"de": "Kanal: voice (Audio) oder text (Chat/Nachrichten).",
	},
	"language": {
		"en": "Customer language (ISO 639-1 code).",
		"de": "Kundensprache (ISO 639-1 Code).",
	},
	"region": {
		"en": "Customer region/canton code.",
		"de": "Region/Kanton des Kunden.",
	},
	"device_type": {
		"en": "Device type used by customer (iOS, Android, Desktop).",
		"de": "Vom Kunden genutztes Gerät (iOS, Android, Desktop).",
	},
	"intent": {
		"en": "Customer intent/topic of the contact.",
		"de": "Kundenanliegen/Thema des Kontakts.",
	},
	"scenario": {
		"en": "Operational scenario describing the situation in the call.",
		"de": "Operatives Szenario, das die Situation im Anruf beschreibt.",
	},
	"AWT": {
		"en": "Average waiting time in seconds.",
		"de": "Durchschnittliche Wartezeit in Sekunden.",
	},
	"Hold_time": {
		"en": "Total time on hold in seconds.",
		"de": "Gesamte Haltezeit in Sekunden.",
	},
	"Transfers_count": {
		"en": "Number of transfers within the call.",
		"de": "Anzahl der Weiterleitungen im Anruf.",
	},
	"Silence_ratio": {
		"en": "Percentage of detected silence segments in the call (0–100).",
		"de": "Prozentsatz an Stille im Anruf (0–100).",
	},
	"Silence_total_seconds": {
		"en": "Total detected silence in seconds across the call.",
		"de": "Gesamte erkannte Stille in Sekunden im Anruf.",
	},
	"Interruptions_count": {
		"en": "Number of agent/customer interruptions.",
		"de": "Anzahl der Unterbrechungen (Agent/Kunde).",
	},
	"FCR": {
		"en": "First Contact Resolution (true if resolved in this contact).",
		"de": "Erstlösungsquote (true, wenn im ersten Kontakt gelöst).",
	},
	"repeat_call_within_72h": {
		"en": "Customer contacted again within 72 hours.",
		"de": "Kunde kontaktierte erneut innerhalb von 72 Stunden.",
	},
	"escalation": {
		"en": "Escalation level (None/Supervisor/Backoffice/IT Ticket).",
		"de": "Eskalationsstufe (None/Supervisor/Backoffice/IT Ticket).",
	},
	"complaint_category": {
		"en": "Complaint type if expressed by customer.",
		"de": "Beschwerdekategorie (falls geäußert).",
	},
	"NPS_score": {
		"en": "Net Promoter Score from 0 to 10.",
		"de": "Net-Promoter-Score von 0 bis 10.",
	},
	"sentiment_score": {
		"en": "Sentiment score in range [-1, 1].",
		"de": "Stimmungsscore im Bereich [-1, 1].",
	},
	"product": {
		"en": "Product relevant to the interaction (nullable).",
		"de": "Produkt im Kontext der Interaktion (nullable).",
	},
	"amount_bucket": {
		"en": "Amount bucket for financial operations (nullable).",
		"de": "Betragsklasse für Finanzoperationen (nullable).",
	},
	"self_service_potential": {
		"en": "Estimated potential for self-service: Low/Medium/High.",
		"de": "Eingeschätztes Self-Service-Potenzial: Low/Medium/High.",
	},
	"automation_action_present": {
		"en": "Whether an automation action was present.",
		"de": "Ob eine Automationsaktion vorhanden war.",
	},
	"automation_action_type": {
		"en": "Type of automation action if present (nullable).",
		"de": "Typ der Automationsaktion (falls vorhanden, nullable).",
	},
	"ANI": {
		"en": "Automatic Number Identification (E.164).",
		"de": "Automatic Number Identification (E.164).",
	},
	"compliance_flags": {
		"en": "Compliance checks per stage: Greeting/Empathy/Summary/Farewell.",
		"de": "Compliance-Prüfungen pro Phase: Greeting/Empathy/Summary/Farewell.",
	},
	"kb_article_used": {
		"en": "Whether a knowledge base article was used.",
		"de": "Ob ein Wissensdatenbank-Artikel genutzt wurde.",
	},
	"language_switch": {
		"en": "Whether a language switch occurred during the call.",
		"de": "Ob ein Sprachwechsel während des Anrufs stattfand.",
	},
	"pii_disclosure_flag": {
		"en": "Whether personally identifiable information was disclosed.",
		"de": "Ob personenbezogene Daten offengelegt wurden.",
	},
	"script_adherence": {
		"en": "Script adherence percentage (0–100).",
		"de": "Skripttreue in Prozent (0–100).",
	},
}
