package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldMenuID      = "menu_id"
	FieldDate        = "date"
	FieldDesignation = "designation"
	FieldYear        = "year"
	FieldMonth       = "month"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentDinner  = "dinner"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpToggle   = "toggle"
	OpRepeat   = "repeat_weeks"
	OpExport   = "export"
	OpSuggest  = "suggest"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
