package eonvm

import (
	"slices"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/eon-protocol/eonvm/circuits/vm"
)

const MAX_INPUTS = 8
const MAX_OUTPUTS = 8

const CREDITS_PROGRAM = "credits.aleo"

var CURVE = ecc.BLS12_381
var FIELD = vm.FIELD

// COINBASE_FUNCTIONS of the credits program create value from nothing and
// are never accepted inside a normal execution.
var COINBASE_FUNCTIONS = []string{"genesis", "mint"}

func IsCoinbase(program, function string) bool {
	return program == CREDITS_PROGRAM && slices.Contains(COINBASE_FUNCTIONS, function)
}
