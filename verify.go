package eonvm

import (
	"context"
	"fmt"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
	"golang.org/x/sync/errgroup"
)

// VkSource resolves the verifying key of a program function.
type VkSource interface {
	Vk(program, function string) (*Vk, bool)
}

// VerifyExecution accepts transitions only if every one of them is valid.
// Structural checks run first, in order; proofs are then verified in
// parallel and the first failure cancels the rest.
func VerifyExecution(ctx context.Context, transitions []*Transition, keys VkSource) error {
	if len(transitions) == 0 {
		return ErrNoTransitions
	}
	log := logger.Logger()
	reject := func(i int, t *Transition, err error) error {
		if t == nil {
			log.Warn().Int("index", i).Err(err).Msg("transition rejected")
			return &TransitionError{Index: i, Err: err}
		}
		log.Warn().Int("index", i).Str("program", t.Program).Str("function", t.Function).Err(err).Msg("transition rejected")
		return &TransitionError{Index: i, Program: t.Program, Function: t.Function, Err: err}
	}

	vks := make([]*Vk, len(transitions))
	publics := make([][]fr.Element, len(transitions))
	for i, t := range transitions {
		if t == nil || t.Proof == nil {
			return reject(i, t, fmt.Errorf("%w: missing transition or proof", ErrMalformedTransition))
		}
		if IsCoinbase(t.Program, t.Function) {
			return reject(i, t, ErrCoinbaseNotAllowed)
		}
		if len(t.Inputs) > MAX_INPUTS {
			return reject(i, t, fmt.Errorf("%w: %d > %d", ErrTooManyInputs, len(t.Inputs), MAX_INPUTS))
		}
		if len(t.Outputs) > MAX_OUTPUTS {
			return reject(i, t, fmt.Errorf("%w: %d > %d", ErrTooManyOutputs, len(t.Outputs), MAX_OUTPUTS))
		}
		vk, ok := keys.Vk(t.Program, t.Function)
		if !ok {
			return reject(i, t, ErrVerifyingKeyNotFound)
		}
		if id := t.ComputeID(); !id.Equal((*fr.Element)(&t.ID)) {
			return reject(i, t, fmt.Errorf("%w: id does not match contents", ErrMalformedTransition))
		}
		pub, err := t.Publics()
		if err != nil {
			return reject(i, t, err)
		}
		vks[i], publics[i] = vk, pub
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range transitions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := vks[i].Verify(t.Proof, publics[i]); err != nil {
				return reject(i, t, fmt.Errorf("%w: %v", ErrInvalidTransitionProof, err))
			}
			return nil
		})
	}
	return g.Wait()
}
