// internal/app/system/authz/resolvedrole.go
package authz

import (
	"strings"

	"github.com/dalemusser/fundops/internal/domain/models"
)

// ResolvedRole is the canonical view of a membership's role, regardless of
// whether the role lives in the dynamic roles collection or only exists as a
// static key on a legacy record. Call sites evaluate permissions through
// this interface instead of special-casing the two representations.
type ResolvedRole interface {
	// Name is the canonical lower-cased role key.
	Name() string
	// DisplayName is the human-readable label.
	DisplayName() string
	// Permissions returns the role's permission map. The map is owned by
	// the caller and safe to mutate.
	Permissions() map[string]bool
}

// matrixRole is a ResolvedRole synthesized from the static permission
// matrix. It has no backing document; an unknown name yields a role with an
// empty permission set (fail-closed).
type matrixRole struct {
	name string
}

func (m matrixRole) Name() string { return m.name }

func (m matrixRole) DisplayName() string { return DisplayName(StaticRole(m.name)) }

func (m matrixRole) Permissions() map[string]bool { return Permissions(StaticRole(m.name)) }

// documentRole is a ResolvedRole backed by a roles-collection document.
type documentRole struct {
	doc models.Role
}

func (d documentRole) Name() string { return d.doc.Name }

func (d documentRole) DisplayName() string {
	if d.doc.DisplayName != "" {
		return d.doc.DisplayName
	}
	return DisplayName(StaticRole(d.doc.Name))
}

func (d documentRole) Permissions() map[string]bool {
	perms := make(map[string]bool, len(d.doc.Permissions))
	for name, allowed := range d.doc.Permissions {
		perms[name] = allowed
	}
	return perms
}

// FromLegacyName builds a ResolvedRole for a name-only membership record.
// The name is folded to lower case to match the static key vocabulary.
func FromLegacyName(name string) ResolvedRole {
	return matrixRole{name: strings.ToLower(strings.TrimSpace(name))}
}

// FromDocument builds a ResolvedRole over a dynamic role document.
func FromDocument(doc models.Role) ResolvedRole {
	return documentRole{doc: doc}
}
