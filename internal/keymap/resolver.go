package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings. Later bindings win on
// conflicting keys.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Hint renders "key desc" pairs for the given actions, as shown in the
// status line. Unbound actions are skipped.
func (r *Resolver) Hint(actions ...Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		keys := r.byAction[a]
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, DisplayKey(keys[0])+" "+shortName(a))
	}
	return strings.Join(parts, "  ")
}

// DisplayKey returns a printable name for a key string.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func shortName(a Action) string {
	switch a {
	case ActionPlayPause:
		return "play/pause"
	case ActionSeekBack, ActionSeekForward:
		return "seek"
	case ActionVolumeUp, ActionVolumeDown:
		return "volume"
	case ActionClosePlayer:
		return "close"
	case ActionToggleLike:
		return "like"
	case ActionSelect:
		return "play"
	default:
		return strings.ReplaceAll(string(a), "_", " ")
	}
}
