package eonvm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/plonk"
	plonkbls12381 "github.com/consensys/gnark/backend/plonk/bls12-381"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/eon-protocol/eonvm/circuits/vm"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
	"github.com/eon-protocol/eonvm/srs"
)

// Pk is the proving key of one function circuit, together with the function
// and its compiled constraint system.
type Pk struct {
	fn  *program.Function
	vk  Vk
	ccs constraint.ConstraintSystem
	pk  *plonkbls12381.ProvingKey
}

// Execution is one proven run of a function.
type Execution struct {
	Trace   *vm.Trace
	Publics []fr.Element
	Proof   *Proof
}

// Compile synthesizes keys for fn from the SRS in cache. The result depends
// only on the function shape and the SRS.
func (me *Pk) Compile(fn *program.Function, cache *srs.Cache) error {
	log := logger.Logger().With().Str("function", fn.ID()).Logger()
	circuit, err := vm.NewCircuit(fn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySynthesisFailed, err)
	}
	ccs, err := frontend.Compile(FIELD, scs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySynthesisFailed, err)
	}
	canonical, lagrange, err := cache.Load(ccs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySynthesisFailed, err)
	}
	log.Debug().Int("constraints", ccs.GetNbConstraints()).Int("srs", len(canonical.Pk.G1)).Msg("circuit compiled")
	ipk, _, err := plonk.Setup(ccs, canonical, lagrange)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySynthesisFailed, err)
	}
	me.fn = fn
	return me.FromGnarkConstraintSystemAndProvingKey(ccs, ipk)
}

func (me *Pk) Function() *program.Function {
	return me.fn
}

func (me *Pk) Vk() *Vk {
	return &me.vk
}

func (me *Pk) ToGnarkConstraintSystem() constraint.ConstraintSystem {
	return me.ccs
}

func (me *Pk) FromGnarkConstraintSystemAndProvingKey(ccs constraint.ConstraintSystem, pk plonk.ProvingKey) error {
	cpk, ok := pk.(*plonkbls12381.ProvingKey)
	if !ok {
		return fmt.Errorf("proving key on the wrong curve: %T", pk)
	}
	if err := me.vk.FromGnarkVerifyingKey(cpk.Vk); err != nil {
		return err
	}
	me.ccs = ccs
	me.pk = cpk
	return nil
}

// Prove evaluates the function on inputs and proves the run. Interpreter
// errors are returned as is. A clean evaluation that does not satisfy the
// constraint system is a bug and panics with ErrUnsatisfied.
func (me *Pk) Prove(inputs []plaintext.Value, opts ...backend.ProverOption) (*Execution, error) {
	trace, assignment, err := vm.Evaluate(me.fn, inputs)
	if err != nil {
		return nil, err
	}
	full, err := frontend.NewWitness(assignment, FIELD)
	if err != nil {
		return nil, err
	}
	if err := me.ccs.IsSolved(full); err != nil {
		panic(fmt.Errorf("%w: %s: %v", ErrUnsatisfied, me.fn.ID(), err))
	}
	gp, err := plonk.Prove(me.ccs, me.pk, full, opts...)
	if err != nil {
		return nil, err
	}
	var proof Proof
	if err := proof.FromGnarkProof(gp); err != nil {
		return nil, err
	}
	public, err := full.Public()
	if err != nil {
		return nil, err
	}
	vec := public.Vector().(fr.Vector)
	return &Execution{Trace: trace, Publics: append([]fr.Element(nil), vec...), Proof: &proof}, nil
}

func (me *Pk) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if _, err := me.fn.WriteTo(&buf); err != nil {
		return 0, err
	}
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(buf.Len()))
	n, err := w.Write(size[:])
	if err != nil {
		return int64(n), err
	}
	m, err := buf.WriteTo(w)
	total := int64(n) + m
	if err != nil {
		return total, err
	}
	k, err := me.ccs.WriteTo(w)
	total += k
	if err != nil {
		return total, err
	}
	k, err = me.pk.WriteTo(w)
	return total + k, err
}

func (me *Pk) ReadFrom(r io.Reader) (int64, error) {
	var size [4]byte
	n, err := io.ReadFull(r, size[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	raw := make([]byte, binary.BigEndian.Uint32(size[:]))
	n, err = io.ReadFull(r, raw)
	total += int64(n)
	if err != nil {
		return total, err
	}
	fn, err := program.LoadFunction(bytes.NewReader(raw))
	if err != nil {
		return total, err
	}
	ccs := plonk.NewCS(CURVE)
	k, err := ccs.ReadFrom(r)
	total += k
	if err != nil {
		return total, err
	}
	pk := plonk.NewProvingKey(CURVE)
	k, err = pk.ReadFrom(r)
	total += k
	if err != nil {
		return total, err
	}
	me.fn = fn
	return total, me.FromGnarkConstraintSystemAndProvingKey(ccs, pk)
}
