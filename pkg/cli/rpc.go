package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/szabotudor/modecky/pkg/docio"
	"github.com/szabotudor/modecky/pkg/models"
)

// Response is the envelope written by the call dispatcher. Exactly one of
// Result and Error is set.
type Response struct {
	Result any        `json:"result"`
	Error  *CallError `json:"error,omitempty"`
}

// CallError classifies a failed call
type CallError struct {
	Kind    string `json:"kind"` // io|decode|args|method|internal
	Message string `json:"message"`
}

func (e *CallError) Error() string { return e.Kind + ": " + e.Message }

type handler func(a *App, args callArgs) (any, error)

var methods = map[string]handler{
	"path_exists": func(a *App, args callArgs) (any, error) {
		p, err := args.str(0)
		if err != nil {
			return nil, err
		}
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, argError("%v", err)
		}
		return docio.Exists(expanded), nil
	},
	"home_dir": func(a *App, _ callArgs) (any, error) {
		return a.config.HomeDir, nil
	},
	"get_shortcut_name": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		return a.registry.ResolveShortcutName(id), nil
	},
	"is_managed": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		return a.registry.IsManaged(id)
	},
	"manage": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, err := args.str(1)
		if err != nil {
			return nil, err
		}
		path, err := args.str(2)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.registry.Manage(id, name, path))
	},
	"unmanage": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.registry.Unmanage(id))
	},
	"get_install_path": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		path, ok, err := a.registry.InstallPath(id)
		if err != nil || !ok {
			return nil, err
		}
		return path, nil
	},
	"list_mods": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		return a.profiles.ListMods(id)
	},
	"list_profiles": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		return a.profiles.ListProfiles(id)
	},
	"get_active_profile": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, ok, err := a.profiles.ActiveProfile(id)
		if err != nil || !ok {
			return nil, err
		}
		return name, nil
	},
	"set_active_profile": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, err := args.optStr(1)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.profiles.SetActiveProfile(id, name))
	},
	"create_profile": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, out, err := a.profiles.CreateProfile(id)
		if err != nil {
			return nil, err
		}
		if !out.Applied {
			return nil, nil
		}
		return name, nil
	},
	"rename_profile": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		oldName, err := args.str(1)
		if err != nil {
			return nil, err
		}
		newName, err := args.optStr(2)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.profiles.RenameProfile(id, oldName, newName))
	},
	"delete_profile": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, err := args.str(1)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.profiles.DeleteProfile(id, name))
	},
	"get_load_order": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, err := args.str(1)
		if err != nil {
			return nil, err
		}
		return a.profiles.LoadOrder(id, name)
	},
	"set_load_order": func(a *App, args callArgs) (any, error) {
		id, err := args.id(0)
		if err != nil {
			return nil, err
		}
		name, err := args.str(1)
		if err != nil {
			return nil, err
		}
		order, err := args.strs(2)
		if err != nil {
			return nil, err
		}
		return outcomeResult(a.profiles.SetLoadOrder(id, name, order))
	},
}

// Methods returns the dispatchable method names, sorted
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes method with a positional JSON array of arguments. An empty
// rawArgs means no arguments. Failures are reported in the response, never as
// a Go error, so the caller always has an envelope to print.
func (a *App) Dispatch(method, rawArgs string) Response {
	h, ok := methods[method]
	if !ok {
		return Response{Error: &CallError{Kind: "method", Message: fmt.Sprintf("unknown method %q", method)}}
	}
	args, err := parseCallArgs(rawArgs)
	if err != nil {
		return Response{Error: classify(err)}
	}
	result, err := h(a, args)
	if err != nil {
		a.logger.Error("call failed", "method", method, "error", err)
		return Response{Error: classify(err)}
	}
	a.logger.Debug("call", "method", method)
	return Response{Result: result}
}

// CallCmd dispatches one method and prints the JSON envelope
func (a *App) CallCmd(method, rawArgs string) error {
	resp := a.Dispatch(method, rawArgs)
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

func outcomeResult(out models.Outcome, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return out.Applied, nil
}

func classify(err error) *CallError {
	var ce *CallError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, models.ErrDecode):
		return &CallError{Kind: "decode", Message: err.Error()}
	case errors.Is(err, models.ErrIO):
		return &CallError{Kind: "io", Message: err.Error()}
	default:
		return &CallError{Kind: "internal", Message: err.Error()}
	}
}

func argError(format string, a ...any) *CallError {
	return &CallError{Kind: "args", Message: fmt.Sprintf(format, a...)}
}

type callArgs []json.RawMessage

func parseCallArgs(raw string) (callArgs, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var args callArgs
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, argError("arguments must be a JSON array: %v", err)
	}
	return args, nil
}

func (c callArgs) at(i int) (json.RawMessage, error) {
	if i >= len(c) {
		return nil, argError("missing argument %d", i)
	}
	return c[i], nil
}

// id accepts either a JSON number or a decimal string
func (c callArgs) id(i int) (models.GameID, error) {
	raw, err := c.at(i)
	if err != nil {
		return 0, err
	}
	text := string(raw)
	var s string
	if json.Unmarshal(raw, &s) == nil {
		text = s
	}
	id, err := models.ParseGameID(text)
	if err != nil {
		return 0, argError("argument %d: %v", i, err)
	}
	return id, nil
}

func (c callArgs) str(i int) (string, error) {
	raw, err := c.at(i)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", argError("argument %d: expected string", i)
	}
	return s, nil
}

// optStr treats a missing argument and JSON null as absent
func (c callArgs) optStr(i int) (*string, error) {
	if i >= len(c) || string(c[i]) == "null" {
		return nil, nil
	}
	s, err := c.str(i)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c callArgs) strs(i int) ([]string, error) {
	raw, err := c.at(i)
	if err != nil {
		return nil, err
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, argError("argument %d: expected array of strings", i)
	}
	return out, nil
}
