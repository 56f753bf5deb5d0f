package dedux

import "fmt"

// Action is a request to advance the store's state. Type is required;
// Payload carries any additional fields.
type Action struct {
	Type    string
	Payload map[string]any
}

// NewAction returns an action of the given type with an optional payload.
func NewAction(typ string, payload map[string]any) *Action {
	return &Action{Type: typ, Payload: payload}
}

// Get returns the payload field for key, or nil.
func (a *Action) Get(key string) any {
	if a == nil || a.Payload == nil {
		return nil
	}
	return a.Payload[key]
}

// ParseAction converts a loosely typed record, such as a decoded JSON
// object, into an Action. The "type" field must be a non-empty string; every
// other field is copied into the payload.
func ParseAction(raw map[string]any) (*Action, error) {
	if raw == nil {
		return nil, &InvalidActionError{Reason: "action is nil"}
	}
	v, ok := raw["type"]
	if !ok {
		return nil, &InvalidActionError{Reason: "missing type"}
	}
	typ, ok := v.(string)
	if !ok {
		return nil, &InvalidActionError{Reason: fmt.Sprintf("type must be a string, got %T", v)}
	}
	if typ == "" {
		return nil, &InvalidActionError{Reason: "type is empty"}
	}

	var payload map[string]any
	if len(raw) > 1 {
		payload = make(map[string]any, len(raw)-1)
		for k, v := range raw {
			if k != "type" {
				payload[k] = v
			}
		}
	}
	return &Action{Type: typ, Payload: payload}, nil
}

func validateAction(a *Action) error {
	if a == nil {
		return &InvalidActionError{Reason: "action is nil"}
	}
	if a.Type == "" {
		return &InvalidActionError{Reason: "type is empty"}
	}
	return nil
}
