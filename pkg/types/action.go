package types

// Op names a single engine decision. The planned-mode report and the
// applied-mode execution emit exactly the same ops for unchanged
// filesystem state.
type Op string

const (
	// OpRoot reports the source/destination pair a run mirrors
	OpRoot Op = "root"
	// OpIgnore reports a name the filter (or cycle guard) excluded
	OpIgnore Op = "ignore"
	// OpNoop reports an entry that is already in the desired state
	OpNoop Op = "noop"
	// OpLink creates a symbolic link
	OpLink Op = "link"
	// OpMkdir creates a directory
	OpMkdir Op = "mkdir"
	// OpMove transfers a bundle into the canonical store
	OpMove Op = "move"
	// OpSync materializes a canonical file into a provider
	OpSync Op = "sync"
	// OpSkip leaves a conflicting entry untouched (skip policy)
	OpSkip Op = "skip"
	// OpBackup moves a conflicting entry to a timestamped sibling
	OpBackup Op = "backup"
	// OpRemove deletes a conflicting entry (replace policy)
	OpRemove Op = "remove"
)

// Mutating reports whether the op changes the filesystem when applied
func (o Op) Mutating() bool {
	switch o {
	case OpLink, OpMkdir, OpMove, OpSync, OpBackup, OpRemove:
		return true
	}
	return false
}

// Action is one reported engine decision. Path is the entry the decision
// is about; Target is the other side for two-path ops (link target,
// backup destination, move destination).
type Action struct {
	Op     Op     `json:"op"`
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	// Note carries a short qualifier, e.g. "already linked"
	Note string `json:"note,omitempty"`
}

// Detail renders the action's paths the way the plain reporter prints them
func (a Action) Detail() string {
	var s string
	switch {
	case a.Target == "":
		s = a.Path
	case a.Op == OpSync:
		s = a.Path + " <- " + a.Target
	default:
		s = a.Path + " -> " + a.Target
	}
	if a.Note != "" {
		s += " " + a.Note
	}
	return s
}

// Report accumulates the full action sequence of a run, in execution order
type Report struct {
	Actions []Action `json:"actions"`
}

// Add appends an action to the report
func (r *Report) Add(a Action) {
	r.Actions = append(r.Actions, a)
}

// Count returns how many recorded actions use any of the given ops
func (r *Report) Count(ops ...Op) int {
	n := 0
	for _, a := range r.Actions {
		for _, op := range ops {
			if a.Op == op {
				n++
				break
			}
		}
	}
	return n
}

// Mutations returns the actions that would change (or changed) the filesystem
func (r *Report) Mutations() []Action {
	var out []Action
	for _, a := range r.Actions {
		if a.Op.Mutating() {
			out = append(out, a)
		}
	}
	return out
}
