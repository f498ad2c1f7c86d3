// Package policy is the application's authorization checkpoint. Handlers and
// middleware never test is_staff directly; they ask the Gate whether an
// Identity may perform an Action on a named resource.
package policy

import "errors"

// Action is the kind of operation being attempted on a resource.
type Action string

const (
	ActionView         Action = "view"
	ActionCreate       Action = "create"
	ActionUpdateStatus Action = "update-status"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNoRuleDefined   = errors.New("no rule defined for resource")
)

// Rule decides whether an identity may perform an action. Rules only run for
// authenticated identities; the Gate rejects anonymous callers first.
type Rule func(id Identity, action Action) bool

// StaffOnly allows staff regardless of action.
func StaffOnly(id Identity, _ Action) bool { return id.Staff }

// AnyUser allows every authenticated identity.
func AnyUser(Identity, Action) bool { return true }

// Gate maps resource names to rules.
type Gate struct {
	rules map[string]Rule
}

func NewGate() *Gate { return &Gate{rules: make(map[string]Rule)} }

// Register sets the rule for a resource, replacing any existing one.
func (g *Gate) Register(resource string, rule Rule) { g.rules[resource] = rule }

// Authorize returns nil when the identity may perform the action.
func (g *Gate) Authorize(id Identity, action Action, resource string) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	rule, ok := g.rules[resource]
	if !ok {
		return ErrNoRuleDefined
	}
	if !rule(id, action) {
		return ErrForbidden
	}
	return nil
}

func (g *Gate) Can(id Identity, action Action, resource string) bool {
	return g.Authorize(id, action, resource) == nil
}
