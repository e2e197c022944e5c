package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Generate extends and corrects the registry, then writes it back in full.
// Nothing is written when reconciliation fails or DryRun is set.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	sess, err := s.openSession(ctx, req.ReconcileInputs)
	if err != nil {
		return GenerateResult{}, err
	}
	generated, err := sess.reconciler.Generate(ctx, sess.index, sess.registry)
	if err != nil {
		return GenerateResult{}, err
	}

	result := GenerateResult{
		Added:        generated.Added,
		Corrections:  generated.Corrections,
		RegistryPath: strings.TrimSpace(req.RegistryPath),
		Changed:      generated.Changed(),
	}
	if req.DryRun {
		log.Ctx(ctx).Info().
			Int("added", len(result.Added)).
			Int("corrected", len(result.Corrections)).
			Msg("dry run, registry not written")
		return result, nil
	}
	if err := s.RegistryStore.Save(result.RegistryPath, generated.Registry); err != nil {
		return GenerateResult{}, err
	}
	result.Written = true
	log.Ctx(ctx).Info().
		Str("registry", result.RegistryPath).
		Int("added", len(result.Added)).
		Int("corrected", len(result.Corrections)).
		Bool("changed", result.Changed).
		Msg("registry written")
	return result, nil
}
