package registry

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// HostIPToken is the placeholder replaced with global.default_host_ip
// everywhere in the registry document.
const HostIPToken = "${default_host_ip}"

// DefaultHostIP is used when global.default_host_ip is unset.
const DefaultHostIP = "127.0.0.1"

// ExpandVariables replaces HostIPToken in every string scalar of the
// document with the resolved default host address. Each scalar is rewritten
// in a single pass, so running the expansion twice is a no-op as long as the
// resolved value does not itself contain the token.
func ExpandVariables(doc *yaml.Node) {
	value := lookupScalar(doc, "global", "default_host_ip")
	if value == "" || strings.Contains(value, HostIPToken) {
		value = DefaultHostIP
	}
	expandNode(doc, HostIPToken, value)
}

func expandNode(n *yaml.Node, token, value string) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode, yaml.SequenceNode:
		for _, c := range n.Content {
			expandNode(c, token, value)
		}
	case yaml.ScalarNode:
		// Non-string scalars (ints, bools) pass through untouched.
		if n.Tag == "!!str" || n.Tag == "" {
			n.Value = strings.ReplaceAll(n.Value, token, value)
		}
	}
}

// lookupScalar walks a mapping path and returns the scalar value at the end,
// or "" if any step is missing.
func lookupScalar(n *yaml.Node, path ...string) string {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n.Kind != yaml.MappingNode {
			return ""
		}
		var next *yaml.Node
		for i := 0; i < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return ""
		}
		n = next
	}
	if n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}
