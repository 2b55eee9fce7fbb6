// Package model defines domain models for dust attack analysis.
package model

import "strings"

// ScriptType is the closed set of Bitcoin output types a script or address can be classified as.
type ScriptType string

const (
	P2PKH      ScriptType = "P2PKH"
	P2SH       ScriptType = "P2SH"
	P2WPKH     ScriptType = "P2WPKH"
	P2WSH      ScriptType = "P2WSH"
	P2TR       ScriptType = "P2TR"
	P2SHP2WPKH ScriptType = "P2SH_P2WPKH"
	P2SHP2WSH  ScriptType = "P2SH_P2WSH"
	Multisig   ScriptType = "MULTISIG"
	NullData   ScriptType = "NULL_DATA"
	Unknown    ScriptType = "UNKNOWN"
)

// ScriptTypes lists every ScriptType in reporting order.
func ScriptTypes() []ScriptType {
	return []ScriptType{P2PKH, P2SH, P2WPKH, P2WSH, P2TR, P2SHP2WPKH, P2SHP2WSH, Multisig, NullData, Unknown}
}

// legacyScriptTypes maps labels written by older annotation runs.
var legacyScriptTypes = map[string]ScriptType{
	"P2SH-P2WPKH":       P2SHP2WPKH,
	"P2SH-P2WSH":        P2SHP2WSH,
	"P2TR_KEY_PATH":     P2TR,
	"P2TR_SCRIPT_PATH":  P2TR,
	"OP_RETURN":         NullData,
	"NULLDATA":          NullData,
	"NON-STANDARD":      Unknown,
	"NON-STANDARD P2SH": P2SH,
}

// ParseScriptType converts a stored label into a ScriptType. Unrecognized labels yield Unknown.
func ParseScriptType(s string) ScriptType {
	label := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range ScriptTypes() {
		if string(t) == label {
			return t
		}
	}
	if t, ok := legacyScriptTypes[label]; ok {
		return t
	}
	return Unknown
}

// SpendPath describes how a Taproot output was unlocked.
type SpendPath string

var (
	// SpendPathNone is used when no witness is available.
	SpendPathNone SpendPath = ""
	// SpendPathKey marks a single-signature key path spend.
	SpendPathKey SpendPath = "key"
	// SpendPathScript marks a tapscript spend with a control block.
	SpendPathScript SpendPath = "script"
)

// ParseSpendPath reads a stored spend path, accepting the legacy P2TR_key_path style labels.
func ParseSpendPath(s string) SpendPath {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "key", "p2tr_key_path":
		return SpendPathKey
	case "script", "p2tr_script_path":
		return SpendPathScript
	default:
		return SpendPathNone
	}
}

// OutputDescriptor carries whatever identifies an output: the locking script as raw bytes
// or asm, the address, and for P2SH spends the redeem script revealed by the input.
type OutputDescriptor struct {
	ScriptBytes  []byte
	ScriptAsm    string
	Address      string
	RedeemScript []byte
}

// IsEmpty reports whether the descriptor has no identifying field.
func (d OutputDescriptor) IsEmpty() bool {
	return len(d.ScriptBytes) == 0 && strings.TrimSpace(d.ScriptAsm) == "" && strings.TrimSpace(d.Address) == ""
}
