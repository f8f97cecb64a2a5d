package workflow

// Action is the kind of a recorded interaction.
type Action string

const (
	ActionToggle  Action = "toggle"
	ActionExtract Action = "extract"
	ActionReplace Action = "replace"
)

// Event is one interaction that changed, or could have changed, the form.
type Event struct {
	Tab        string `json:"tab"`
	Action     Action `json:"action"`
	Identifier string `json:"identifier"`

	// Changed is false for a toggle that was already enabled
	Changed bool `json:"changed"`
}

// CountActions returns how many events of action a trace holds, optionally
// restricted to one tab ("" for all tabs).
func CountActions(trace []Event, tab string, action Action) int {
	n := 0
	for _, e := range trace {
		if e.Action == action && (tab == "" || e.Tab == tab) {
			n++
		}
	}
	return n
}
