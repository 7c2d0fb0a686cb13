package server

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"

	"github.com/funvibe/minilang/internal/diagnostics"
)

// Request mirrors the ProgramRequest message.
type Request struct {
	Source    string
	File      string
	Scoping   string
	SkipCheck bool
	Stdin     string
}

// Diagnostic mirrors the Diagnostic message.
type Diagnostic struct {
	Code    string
	Name    string
	Phase   string
	Message string
	Node    string
	File    string
}

// Response mirrors CheckResponse and RunResponse. Result and Output are
// only carried by Run.
type Response struct {
	RunID       string
	Type        string
	Result      string
	Output      string
	Diagnostics []Diagnostic
}

func fromDiagnostic(err *diagnostics.DiagnosticError) Diagnostic {
	return Diagnostic{
		Code:    string(err.Code),
		Name:    err.Code.Name(),
		Phase:   string(err.Phase),
		Message: err.Message,
		Node:    err.Node,
		File:    err.File,
	}
}

func (r Request) toMessage(md *desc.MessageDescriptor) (*dynamic.Message, error) {
	msg := dynamic.NewMessage(md)
	fields := map[string]interface{}{
		"source":     r.Source,
		"file":       r.File,
		"scoping":    r.Scoping,
		"skip_check": r.SkipCheck,
		"stdin":      r.Stdin,
	}
	for name, val := range fields {
		if err := msg.TrySetFieldByName(name, val); err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return msg, nil
}

func requestFromMessage(msg *dynamic.Message) Request {
	return Request{
		Source:    stringField(msg, "source"),
		File:      stringField(msg, "file"),
		Scoping:   stringField(msg, "scoping"),
		SkipCheck: boolField(msg, "skip_check"),
		Stdin:     stringField(msg, "stdin"),
	}
}

// toMessage fills whichever response fields md declares.
func (r *Response) toMessage(md *desc.MessageDescriptor) (*dynamic.Message, error) {
	msg := dynamic.NewMessage(md)
	fields := map[string]string{
		"run_id": r.RunID,
		"type":   r.Type,
		"result": r.Result,
		"output": r.Output,
	}
	for name, val := range fields {
		if md.FindFieldByName(name) == nil {
			continue
		}
		if err := msg.TrySetFieldByName(name, val); err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
	}

	fd := md.FindFieldByName("diagnostics")
	if fd == nil {
		return msg, nil
	}
	for _, d := range r.Diagnostics {
		dm := dynamic.NewMessage(fd.GetMessageType())
		for name, val := range map[string]string{
			"code":    d.Code,
			"name":    d.Name,
			"phase":   d.Phase,
			"message": d.Message,
			"node":    d.Node,
			"file":    d.File,
		} {
			if err := dm.TrySetFieldByName(name, val); err != nil {
				return nil, fmt.Errorf("setting diagnostic %s: %w", name, err)
			}
		}
		if err := msg.TryAddRepeatedFieldByName("diagnostics", dm); err != nil {
			return nil, fmt.Errorf("adding diagnostic: %w", err)
		}
	}
	return msg, nil
}

func responseFromMessage(msg *dynamic.Message) *Response {
	resp := &Response{
		RunID:  stringField(msg, "run_id"),
		Type:   stringField(msg, "type"),
		Result: stringField(msg, "result"),
		Output: stringField(msg, "output"),
	}
	raw, err := msg.TryGetFieldByName("diagnostics")
	if err != nil {
		return resp
	}
	items, _ := raw.([]interface{})
	for _, item := range items {
		dm, ok := item.(*dynamic.Message)
		if !ok {
			continue
		}
		resp.Diagnostics = append(resp.Diagnostics, Diagnostic{
			Code:    stringField(dm, "code"),
			Name:    stringField(dm, "name"),
			Phase:   stringField(dm, "phase"),
			Message: stringField(dm, "message"),
			Node:    stringField(dm, "node"),
			File:    stringField(dm, "file"),
		})
	}
	return resp
}

// stringField reads a string field; absent fields read as "".
func stringField(msg *dynamic.Message, name string) string {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolField(msg *dynamic.Message, name string) bool {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
