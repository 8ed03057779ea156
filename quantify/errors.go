package quantify

import (
	"errors"

	"github.com/mbbslab/mrsfit/algorithms/common"
)

var (
	// ErrInvalidArgument reports malformed acquisition parameters or
	// mismatched input lengths, raised at the boundary before any
	// computation runs.
	ErrInvalidArgument = common.ErrInvalidArgument

	// ErrUnknownMoleculeKind reports an unrecognized molecule selector.
	ErrUnknownMoleculeKind = errors.New("unknown molecule kind")
)
