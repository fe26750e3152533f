package ports

import "context"

// ToolResolver locates external tool executables.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ToolResolver interface {
	// Resolve returns an absolute path for the named tool.
	//
	// An explicit path wins unconditionally. Otherwise envVar is consulted
	// when non-empty, then the platform lookup (xcrun on darwin, PATH
	// elsewhere). Returns domain.ErrExecutableNotFound when nothing matches.
	Resolve(ctx context.Context, name, explicit, envVar string) (string, error)
}
