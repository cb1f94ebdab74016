package domain

// TargetID identifies a build target within one resolver run. It is a pure
// function of the target's constructor parameters: two targets with equal IDs
// are the same node in the dependency graph.
type TargetID struct {
	// Kind names the target variant, e.g. "build-project" or "site-install".
	Kind string
	// Key carries the distinguishing parameter (project dirname, site name,
	// profile name). Empty for singleton targets.
	Key string
}

// TID constructs a TargetID from a kind and an optional key.
func TID(kind, key string) TargetID {
	return TargetID{Kind: kind, Key: key}
}

// String renders the ID as kind or kind(key).
func (id TargetID) String() string {
	if id.Key == "" {
		return id.Kind
	}
	return id.Kind + "(" + id.Key + ")"
}
