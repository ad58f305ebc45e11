package emit

import (
	"fmt"
	"strings"

	"github.com/mjoubert/stackup/internal/registry"
)

// hostnameVars maps well-known services to the hostname environment
// variables the stack's .env file defines for them.
var hostnameVars = map[string]string{
	"n8n":          "$N8N_HOSTNAME",
	"open-webui":   "$WEBUI_HOSTNAME",
	"flowise":      "$FLOWISE_HOSTNAME",
	"langfuse-web": "$LANGFUSE_HOSTNAME",
	"neo4j":        "$NEO4J_HOSTNAME",
	"searxng":      "$SEARXNG_HOSTNAME",
	"portainer":    "$PORTAINER_HOSTNAME",
}

// HostnameVar returns the hostname variable for a service. Unrecognized
// services fall back to an upper-snake form of the name, e.g.
// "my-app" -> "$MY_APP_HOSTNAME".
func HostnameVar(service string) string {
	if v, ok := hostnameVars[service]; ok {
		return v
	}
	return "$" + strings.ToUpper(strings.ReplaceAll(service, "-", "_")) + "_HOSTNAME"
}

// Caddyfile renders the routing document for every resolved service flagged
// reverse_proxy. Each block proxies the service's hostname variable to
// name:containerPort using the first declared port. The trailing addon
// import is always present so user-supplied routes survive regeneration.
func Caddyfile(reg *registry.Registry, services []string) string {
	var b strings.Builder

	b.WriteString("{\n    email {$LETSENCRYPT_EMAIL}\n}\n\n")

	for _, name := range services {
		svc, ok := reg.Services.Get(name)
		if !ok || !svc.ReverseProxy || len(svc.Ports) == 0 {
			continue
		}

		desc := svc.Description
		if desc == "" {
			desc = name
		}

		fmt.Fprintf(&b, "# %s\n", desc)
		fmt.Fprintf(&b, "{%s} {\n", HostnameVar(name))
		fmt.Fprintf(&b, "    reverse_proxy %s:%d\n", name, svc.Ports[0].ContainerPort)
		b.WriteString("}\n\n")
	}

	b.WriteString("import /etc/caddy/addons/*.conf\n")
	return b.String()
}
