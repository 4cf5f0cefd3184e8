package workflow

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed statuses.yaml
var defaultStatuses []byte

type statusFile struct {
	Statuses []statusEntry `yaml:"statuses"`
}

type statusEntry struct {
	Key          string   `yaml:"key"`
	Label        string   `yaml:"label"`
	Description  string   `yaml:"description"`
	NextStatuses []string `yaml:"next_statuses"`
	AllowedRoles []string `yaml:"allowed_roles"`
	NotifyRoles  []string `yaml:"notify_roles"`
}

// Registry is the read-only catalogue of status definitions.
type Registry struct {
	order       []order.Status
	definitions map[order.Status]StatusDefinition
}

// LoadDefaultRegistry parses the embedded status graph.
func LoadDefaultRegistry() (*Registry, error) {
	return NewRegistryFromYAML(defaultStatuses)
}

// LoadRegistryFile parses a status graph from path. An empty path loads the
// embedded default.
func LoadRegistryFile(path string) (*Registry, error) {
	if path == "" {
		return LoadDefaultRegistry()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status config %s: %w", path, err)
	}
	return NewRegistryFromYAML(data)
}

// NewRegistryFromYAML parses and validates a status graph document.
func NewRegistryFromYAML(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file statusFile
	if err := dec.Decode(&file); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status config", err)
	}

	return newRegistry(file.Statuses)
}

func newRegistry(entries []statusEntry) (*Registry, error) {
	r := &Registry{definitions: make(map[order.Status]StatusDefinition, len(entries))}

	var problems []error
	for _, e := range entries {
		def, err := parseEntry(e)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := r.definitions[def.key]; dup {
			problems = append(problems, fmt.Errorf("status %s is defined twice", def.key))
			continue
		}
		r.definitions[def.key] = def
		r.order = append(r.order, def.key)
	}

	for _, s := range order.KnownStatuses() {
		if _, ok := r.definitions[s]; !ok {
			problems = append(problems, fmt.Errorf("status %s is not defined", s))
		}
	}
	for _, key := range r.order {
		def := r.definitions[key]
		for _, next := range def.nextStatuses {
			if _, ok := r.definitions[next]; !ok {
				problems = append(problems, fmt.Errorf("status %s leads to undefined status %s", key, next))
			}
		}
	}
	for _, terminal := range []order.Status{order.Completed, order.Cancelled} {
		if def, ok := r.definitions[terminal]; ok && !def.IsTerminal() {
			problems = append(problems, fmt.Errorf("terminal status %s must not have next statuses", terminal))
		}
	}

	if len(problems) > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("status config", errors.Join(problems...))
	}
	return r, nil
}

func parseEntry(e statusEntry) (StatusDefinition, error) {
	key, err := order.ParseStatus(e.Key)
	if err != nil {
		return StatusDefinition{}, err
	}

	def := StatusDefinition{key: key, label: e.Label, description: e.Description}
	if def.label == "" {
		def.label = string(key)
	}

	var problems []error
	for _, raw := range e.NextStatuses {
		s, err := order.ParseStatus(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("status %s: %w", key, err))
			continue
		}
		if s == key {
			problems = append(problems, fmt.Errorf("status %s leads to itself", key))
			continue
		}
		if !slices.Contains(def.nextStatuses, s) {
			def.nextStatuses = append(def.nextStatuses, s)
		}
	}

	def.allowedRoles, err = parseRoles(e.AllowedRoles)
	if err != nil {
		problems = append(problems, fmt.Errorf("status %s allowed roles: %w", key, err))
	}
	def.notifyRoles, err = parseRoles(e.NotifyRoles)
	if err != nil {
		problems = append(problems, fmt.Errorf("status %s notify roles: %w", key, err))
	}

	return def, errors.Join(problems...)
}

func parseRoles(raw []string) ([]role.Role, error) {
	var (
		roles    []role.Role
		problems []error
	)
	for _, name := range raw {
		r, err := role.Parse(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles, errors.Join(problems...)
}

// StatusInfo returns the definition of status.
func (r *Registry) StatusInfo(status order.Status) (StatusDefinition, bool) {
	def, ok := r.definitions[status]
	return def, ok
}

// Statuses returns every defined status in configuration order.
func (r *Registry) Statuses() []order.Status {
	return slices.Clone(r.order)
}

// NextPossibleStatuses returns the statuses reachable from status that actor
// role may move an order into, in configuration order. Admin sees every next
// status. Unknown statuses yield nil.
func (r *Registry) NextPossibleStatuses(status order.Status, actor role.Role) []order.Status {
	def, ok := r.definitions[status]
	if !ok {
		return nil
	}

	var result []order.Status
	for _, next := range def.nextStatuses {
		if actor == role.Admin || r.definitions[next].allows(actor) {
			result = append(result, next)
		}
	}
	return result
}

// NotifyRoles returns the roles to notify when an order arrives in status.
func (r *Registry) NotifyRoles(status order.Status) []role.Role {
	def, ok := r.definitions[status]
	if !ok {
		return nil
	}
	return def.NotifyRoles()
}
