package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Verify reports drift between the schema and the registry without
// touching the registry file.
func (s Service) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	sess, err := s.openSession(ctx, req.ReconcileInputs)
	if err != nil {
		return VerifyResult{}, err
	}
	findings, err := sess.reconciler.Verify(ctx, sess.index, sess.registry)
	if err != nil {
		return VerifyResult{}, err
	}
	result := VerifyResult{
		Findings:        findings,
		SchemaTypes:     sess.index.Len(),
		ExcludedTypes:   sess.index.Excluded(),
		RegistryEntries: len(sess.registry.Entries),
	}
	missing, mismatched := result.Counts()
	log.Ctx(ctx).Info().
		Int("missing", missing).
		Int("mismatched", mismatched).
		Msg("verify finished")
	return result, nil
}
