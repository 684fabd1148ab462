package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

var registry = map[string]func() Command{
	"addPage":         func() Command { return &AddPage{} },
	"removePage":      func() Command { return &RemovePage{} },
	"updatePage":      func() Command { return &UpdatePage{} },
	"copyPage":        func() Command { return &CopyPage{} },
	"switchPageIndex": func() Command { return &SwitchPageIndex{} },
	"createObject":    func() Command { return &CreateObject{} },
	"updateObjects":   func() Command { return &UpdateObjects{} },
	"duplicate":       func() Command { return &Duplicate{} },
	"removeObjects":   func() Command { return &RemoveObjects{} },
	"groupObjects":    func() Command { return &GroupObjects{} },
	"ungroupObject":   func() Command { return &UngroupObject{} },
	"upsertEffect":    func() Command { return &UpsertEffect{} },
	"removeEffect":    func() Command { return &RemoveEffect{} },
	"captureHistory":  func() Command { return &CaptureHistory{} },
	"undo":            func() Command { return &Undo{} },
	"redo":            func() Command { return &Redo{} },
	"setQueueIndex":   func() Command { return &SetQueueIndex{} },
	"selectObjects":   func() Command { return &SelectObjects{} },
	"setPage":         func() Command { return &SetPage{} },
}

// CommandNames lists every command Decode understands.
func CommandNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Decode builds a command from its wire name and JSON payload. Unknown
// names, unknown payload fields and malformed payloads are validation errors.
func Decode(name string, payload json.RawMessage) (Command, error) {
	newCmd, ok := registry[name]
	if !ok {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown command %q", name))
	}
	ptr := newCmd()
	if len(bytes.TrimSpace(payload)) > 0 && !bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(ptr); err != nil {
			return nil, domain.NewValidationError("payload", err.Error())
		}
	}
	return deref(ptr), nil
}

// deref turns the pointer used for decoding back into the value type the
// editor switches on.
func deref(c Command) Command {
	switch v := c.(type) {
	case *AddPage:
		return *v
	case *RemovePage:
		return *v
	case *UpdatePage:
		return *v
	case *CopyPage:
		return *v
	case *SwitchPageIndex:
		return *v
	case *CreateObject:
		return *v
	case *UpdateObjects:
		return *v
	case *Duplicate:
		return *v
	case *RemoveObjects:
		return *v
	case *GroupObjects:
		return *v
	case *UngroupObject:
		return *v
	case *UpsertEffect:
		return *v
	case *RemoveEffect:
		return *v
	case *CaptureHistory:
		return *v
	case *Undo:
		return *v
	case *Redo:
		return *v
	case *SetQueueIndex:
		return *v
	case *SelectObjects:
		return *v
	case *SetPage:
		return *v
	}
	return c
}
