package ports

import "go.trai.ch/mason/internal/core/domain"

// Syncer reconciles freshly generated files into the generated-sources
// directory without touching destinations whose content is unchanged.
// Downstream build tools key rebuilds off modification time, so an
// unconditional copy would force spurious rebuilds.
//
//go:generate mockgen -source=syncer.go -destination=mocks/mock_syncer.go -package=mocks
type Syncer interface {
	// SyncIfChanged compares candidate and destination by content and
	// replaces the destination only if they differ or it is missing,
	// creating parent directories as needed.
	SyncIfChanged(candidate, destination string) (domain.SyncDecision, error)
}
