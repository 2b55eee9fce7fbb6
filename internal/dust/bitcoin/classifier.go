package bitcoin

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
)

// scriptClassTypes maps standard script templates onto the classifier labels.
// Bare P2PK and unknown witness versions are outside the label set.
var scriptClassTypes = map[txscript.ScriptClass]model.ScriptType{
	txscript.PubKeyHashTy:          model.P2PKH,
	txscript.ScriptHashTy:          model.P2SH,
	txscript.WitnessV0PubKeyHashTy: model.P2WPKH,
	txscript.WitnessV0ScriptHashTy: model.P2WSH,
	txscript.WitnessV1TaprootTy:    model.P2TR,
	txscript.MultiSigTy:            model.Multisig,
	txscript.NullDataTy:            model.NullData,
}

type scriptMatcher struct {
	scriptType model.ScriptType
	match      func(script []byte) bool
}

// scriptMatchers are evaluated in order, the first match wins. OP_RETURN goes first
// because txscript only accepts a single small push as null data.
var scriptMatchers = []scriptMatcher{
	{scriptType: model.NullData, match: func(script []byte) bool {
		return len(script) > 0 && script[0] == txscript.OP_RETURN
	}},
}

// Classifier labels output descriptors with their script type.
type Classifier struct {
	params *chaincfg.Params
}

// NewClassifier builds a Classifier decoding addresses for the given network.
func NewClassifier(network model.Network) (*Classifier, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &Classifier{params: params}, nil
}

// Classify returns the script type of the descriptor. The address is checked first,
// then the locking script; a P2SH result is refined by the redeem script when present.
// Empty or malformed descriptors yield model.Unknown.
func (c *Classifier) Classify(d model.OutputDescriptor) model.ScriptType {
	if t, ok := c.classifyAddress(d.Address); ok {
		return refineP2SH(t, d.RedeemScript)
	}
	if script := lockingScript(d); len(script) > 0 {
		return refineP2SH(classifyScript(script), d.RedeemScript)
	}
	// bitcoind prints undecodable carrier payloads as "OP_RETURN [error]".
	if IsNullDataText(d.ScriptAsm) {
		return model.NullData
	}
	return model.Unknown
}

// ScriptLength returns the byte length of the locking script. Without script data the
// canonical script length of the decoded address is used; 0 means unknown.
func (c *Classifier) ScriptLength(d model.OutputDescriptor) int {
	if script := lockingScript(d); len(script) > 0 {
		return len(script)
	}
	addr, err := c.decodeAddress(d.Address)
	if err != nil {
		return 0
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return 0
	}
	return len(script)
}

func (c *Classifier) classifyAddress(address string) (model.ScriptType, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return model.Unknown, false
	}
	// Explorers put the data carrier asm in the address column of OP_RETURN outputs.
	if IsNullDataText(address) {
		return model.NullData, true
	}
	addr, err := c.decodeAddress(address)
	if err != nil {
		return model.Unknown, false
	}
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return model.P2PKH, true
	case *btcutil.AddressScriptHash:
		return model.P2SH, true
	case *btcutil.AddressWitnessPubKeyHash:
		return model.P2WPKH, true
	case *btcutil.AddressWitnessScriptHash:
		return model.P2WSH, true
	case *btcutil.AddressTaproot:
		return model.P2TR, true
	default:
		return model.Unknown, false
	}
}

func (c *Classifier) decodeAddress(address string) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(strings.TrimSpace(address), c.params)
	if err != nil {
		return nil, err
	}
	if !addr.IsForNet(c.params) {
		return nil, btcutil.ErrUnknownAddressType
	}
	return addr, nil
}

func classifyScript(script []byte) model.ScriptType {
	for _, m := range scriptMatchers {
		if m.match(script) {
			return m.scriptType
		}
	}
	if t, ok := scriptClassTypes[txscript.GetScriptClass(script)]; ok {
		return t
	}
	return model.Unknown
}

func refineP2SH(t model.ScriptType, redeemScript []byte) model.ScriptType {
	if t != model.P2SH || len(redeemScript) == 0 {
		return t
	}
	switch txscript.GetScriptClass(redeemScript) {
	case txscript.WitnessV0PubKeyHashTy:
		return model.P2SHP2WPKH
	case txscript.WitnessV0ScriptHashTy:
		return model.P2SHP2WSH
	default:
		return t
	}
}

func lockingScript(d model.OutputDescriptor) []byte {
	if len(d.ScriptBytes) > 0 {
		return d.ScriptBytes
	}
	if strings.TrimSpace(d.ScriptAsm) == "" {
		return nil
	}
	script, err := ParseAsm(d.ScriptAsm)
	if err != nil {
		return nil
	}
	return script
}
