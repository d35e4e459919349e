package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldID          = "id"
	FieldKind        = "type"
	FieldMonth       = "month"
	FieldAmountCents = "amount_cents"
	FieldFound       = "found"
	FieldPath        = "path"
	FieldRows        = "rows"
	FieldUsername    = "username"
	FieldActionID    = "action_id"
	FieldAction      = "action"
	FieldDurationMs  = "duration_ms"
	FieldSuccess     = "success"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentBudget  = "budget"
	ComponentReport  = "report"
	ComponentChart   = "chart"
	ComponentAuth    = "auth"
	ComponentConsole = "console"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpUpsert   = "upsert"
	OpExport   = "export"
	OpRender   = "render"
	OpRegister = "register"
	OpLogin    = "login"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeStorage    = "storage_error"
	ErrorTypeNotFound   = "not_found_error"
	ErrorTypeNoData     = "no_data_error"
	ErrorTypeAuth       = "auth_error"
	ErrorTypeInternal   = "internal_error"
)
