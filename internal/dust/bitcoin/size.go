package bitcoin

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
)

const (
	witnessScaleFactor = 4

	// UnknownOutputVSize is charged for outputs whose script length is not known:
	// the largest standard output (P2WSH / P2TR).
	UnknownOutputVSize = 43

	// taprootAnnexTag marks an optional last witness element that is not part of the spend.
	taprootAnnexTag = 0x50
)

// InputVirtualSize returns the virtual size in vbytes an input adds to a transaction:
// non-witness bytes count four weight units each, witness bytes one.
func InputVirtualSize(sigScript []byte, witness [][]byte) int {
	in := wire.TxIn{SignatureScript: sigScript, Witness: wire.TxWitness(witness)}
	weight := in.SerializeSize() * witnessScaleFactor
	if len(witness) > 0 {
		weight += in.Witness.SerializeSize()
	}
	return (weight + witnessScaleFactor - 1) / witnessScaleFactor
}

// OutputVirtualSize returns the serialized size of an output with a locking script of
// scriptLen bytes. Outputs with unknown scripts are charged UnknownOutputVSize.
func OutputVirtualSize(scriptLen int, scriptType model.ScriptType) int {
	if scriptLen <= 0 && scriptType != model.NullData {
		return UnknownOutputVSize
	}
	return wire.NewTxOut(0, make([]byte, scriptLen)).SerializeSize()
}

// TaprootSpendPath tells a key path spend (a lone signature) from a script path spend
// using the witness stack, ignoring a trailing annex.
func TaprootSpendPath(witness [][]byte) model.SpendPath {
	if len(witness) >= 2 {
		if last := witness[len(witness)-1]; len(last) > 0 && last[0] == taprootAnnexTag {
			witness = witness[:len(witness)-1]
		}
	}
	switch len(witness) {
	case 0:
		return model.SpendPathNone
	case 1:
		return model.SpendPathKey
	default:
		return model.SpendPathScript
	}
}
