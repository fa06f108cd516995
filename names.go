package wirefmt

import "strings"

// Names configures speaker labels for example-turn prefixing.
// The zero value is usable; DefaultNames supplies the default labels.
type Names struct {
	// UserName replaces the NameExampleUser sentinel.
	UserName string

	// CharName replaces the NameExampleAssistant sentinel.
	CharName string

	// GroupNames lists group member names. An example-assistant turn
	// already starting with one of them is not prefixed again.
	GroupNames []string

	// StartsWithGroupName overrides the group-name check. When nil,
	// GroupNames prefixes are matched directly.
	StartsWithGroupName func(text string) bool
}

// DefaultNames returns the name context applied when none is given.
func DefaultNames() Names {
	return Names{
		UserName: "User",
		CharName: "Assistant",
	}
}

// StartsWithGroup reports whether text already opens with a group
// member's speaker prefix.
func (n Names) StartsWithGroup(text string) bool {
	if n.StartsWithGroupName != nil {
		return n.StartsWithGroupName(text)
	}
	for _, g := range n.GroupNames {
		if g != "" && strings.HasPrefix(text, g+": ") {
			return true
		}
	}
	return false
}
