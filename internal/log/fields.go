package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldExpenseID = "expense_id"
	FieldGoalID    = "goal_id"
	FieldCategory  = "category"
	FieldPeriod    = "period"
	FieldAmount    = "amount"
	FieldSetting   = "setting"
	FieldPath      = "path"
	FieldWindow    = "window"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentExpense  = "expense"
	ComponentSettings = "settings"
	ComponentCatalog  = "catalog"
	ComponentBudget   = "budget"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpReplace = "replace"
	OpMigrate = "migrate"
)
