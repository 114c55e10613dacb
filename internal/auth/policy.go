package auth

import "strings"

// AccessClass partitions routes into public and authenticated.
type AccessClass string

const (
	AccessPublic        AccessClass = "public"
	AccessAuthenticated AccessClass = "authenticated"
)

// Rule classifies requests matching a method and path pattern. An empty
// method matches any method. Patterns are segment-wise: ":name" and "*"
// match one segment, a trailing "**" matches the rest of the path.
type Rule struct {
	Method  string
	Pattern string
	Class   AccessClass
}

// PolicyTable is an ordered rule list. Classification is first match wins;
// requests matching no rule are authenticated.
type PolicyTable []Rule

// Classify returns the access class for a request.
func (t PolicyTable) Classify(method, path string) AccessClass {
	for _, rule := range t {
		if rule.Method != "" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Class
		}
	}
	return AccessAuthenticated
}

// DefaultPolicy mirrors the service's route partition: verification, join,
// login, password and generic auth endpoints plus read-only roadmap access
// are public; everything else requires a bearer token.
func DefaultPolicy() PolicyTable {
	return PolicyTable{
		{Pattern: "/health/**", Class: AccessPublic},
		{Pattern: "/api/email/**", Class: AccessPublic},
		{Pattern: "/api/join", Class: AccessPublic},
		{Pattern: "/api/login", Class: AccessPublic},
		{Pattern: "/api/password/**", Class: AccessPublic},
		{Pattern: "/api/auth/**", Class: AccessPublic},
		{Method: "GET", Pattern: "/api/refresh", Class: AccessPublic},
		{Method: "GET", Pattern: "/api/roadmaps/my", Class: AccessAuthenticated},
		{Method: "GET", Pattern: "/api/roadmaps", Class: AccessPublic},
		{Method: "GET", Pattern: "/api/roadmaps/:roadmapId", Class: AccessPublic},
	}
}

func matchPattern(pattern, path string) bool {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patternSegs {
		if seg == "**" {
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg == "*" || strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return len(patternSegs) == len(pathSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
