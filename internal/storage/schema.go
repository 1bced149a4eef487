package storage

import (
	"encoding/json"
	"fmt"
)

// Collection file names. One JSON file per collection in the data directory.
const (
	ProductsFile      = "products.json"
	CustomersFile     = "customers.json"
	SalesFile         = "sales.json"
	ExpensesFile      = "expenses.json"
	MovementsFile     = "movements.json"
	PaymentsFile      = "payments.json"
	NotificationsFile = "notifications.json"
	UsersFile         = "users.json"
	SettingsFile      = "settings.json"
)

type shape int

const (
	shapeList shape = iota // JSON array of objects, each with a non-empty "id"
	shapeMap               // JSON object
)

// schemas registers the expected structure per collection. Files not listed
// here pass validation unchecked (matches the permissive behavior for
// auxiliary files like custom notification rules).
var schemas = map[string]shape{
	ProductsFile:      shapeList,
	CustomersFile:     shapeList,
	SalesFile:         shapeList,
	ExpensesFile:      shapeList,
	MovementsFile:     shapeList,
	PaymentsFile:      shapeList,
	NotificationsFile: shapeList,
	UsersFile:         shapeMap,
	SettingsFile:      shapeMap,
}

// ValidateSchema checks decoded JSON data against the structural schema of
// the named collection. It fails fast: only the first violation is reported.
// Run after every read (corruption detection) and before every write.
func ValidateSchema(name string, data any) error {
	sh, known := schemas[name]
	if !known {
		return nil
	}
	switch sh {
	case shapeList:
		list, ok := data.([]any)
		if !ok {
			return &Error{Kind: KindCorruption, Op: "validate", File: name,
				Msg: "data must be a list"}
		}
		for i, item := range list {
			rec, ok := item.(map[string]any)
			if !ok {
				return &Error{Kind: KindCorruption, Op: "validate", File: name,
					Msg: fmt.Sprintf("element %d must be an object with an 'id' field", i)}
			}
			id, _ := rec["id"].(string)
			if id == "" {
				return &Error{Kind: KindCorruption, Op: "validate", File: name,
					Msg: fmt.Sprintf("element %d is missing a non-empty 'id' field", i)}
			}
		}
	case shapeMap:
		if _, ok := data.(map[string]any); !ok {
			return &Error{Kind: KindCorruption, Op: "validate", File: name,
				Msg: "data must be an object"}
		}
	}
	return nil
}

// validateRaw decodes raw JSON generically and applies ValidateSchema. Used
// on the load path before the typed unmarshal so shape violations are caught
// even when they would coerce silently into struct defaults.
func validateRaw(name string, raw []byte) error {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return &Error{Kind: KindCorruption, Op: "validate", File: name,
			Msg: "invalid JSON", Err: err}
	}
	return ValidateSchema(name, data)
}

// defaultSettings is the seeded content of settings.json on first run.
func defaultSettings() map[string]any {
	return map[string]any{
		"theme":        "light",
		"company_name": "ZERO",
		"last_backup":  nil,
	}
}
