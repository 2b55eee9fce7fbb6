package bitcoin

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// ErrInvalidAsm is returned when an asm token is neither an opcode, a number nor hex data.
var ErrInvalidAsm = errors.New("bitcoin: invalid script asm")

var sigHashSuffixes = map[string]txscript.SigHashType{
	"[ALL]":                 txscript.SigHashAll,
	"[NONE]":                txscript.SigHashNone,
	"[SINGLE]":              txscript.SigHashSingle,
	"[ALL|ANYONECANPAY]":    txscript.SigHashAll | txscript.SigHashAnyOneCanPay,
	"[NONE|ANYONECANPAY]":   txscript.SigHashNone | txscript.SigHashAnyOneCanPay,
	"[SINGLE|ANYONECANPAY]": txscript.SigHashSingle | txscript.SigHashAnyOneCanPay,
}

// ParseAsm assembles a script from its asm form as printed by bitcoind: opcode names,
// decimal script numbers for short pushes, hex for data and an optional sighash suffix
// on signatures. Esplora style push markers (OP_PUSHBYTES_n, OP_PUSHDATA1/2/4) are
// skipped, the hex token that follows them is pushed with minimal encoding.
func ParseAsm(asm string) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	var afterMarker bool
	for _, token := range strings.Fields(asm) {
		if isPushMarker(token) {
			afterMarker = true
			continue
		}
		if afterMarker {
			afterMarker = false
			data, err := decodePush(token)
			if err != nil {
				return nil, err
			}
			builder.AddFullData(data)
			continue
		}
		if op, ok := opcodeByName(token); ok {
			builder.AddOp(op)
			continue
		}
		if n, err := strconv.ParseInt(token, 10, 32); err == nil {
			builder.AddInt64(n)
			continue
		}
		data, err := decodePush(token)
		if err != nil {
			return nil, err
		}
		builder.AddFullData(data)
	}
	script, err := builder.Script()
	if err != nil {
		return nil, fmt.Errorf("build script: %w", err)
	}
	return script, nil
}

func isPushMarker(token string) bool {
	name := strings.ToUpper(token)
	switch name {
	case "OP_PUSHDATA1", "OP_PUSHDATA2", "OP_PUSHDATA4":
		return true
	}
	n, ok := strings.CutPrefix(name, "OP_PUSHBYTES_")
	if !ok {
		return false
	}
	_, err := strconv.ParseUint(n, 10, 8)
	return err == nil
}

// IsNullDataText reports whether an asm string or explorer address column describes a
// data carrier output, i.e. starts with OP_RETURN.
func IsNullDataText(s string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "OP_RETURN")
}

func opcodeByName(token string) (byte, bool) {
	name := strings.ToUpper(token)
	if op, ok := txscript.OpcodeByName[name]; ok {
		return op, true
	}
	if !strings.HasPrefix(name, "OP_") {
		if op, ok := txscript.OpcodeByName["OP_"+name]; ok && len(name) > 2 {
			return op, true
		}
	}
	return 0, false
}

func decodePush(token string) ([]byte, error) {
	var sigHash []byte
	if idx := strings.IndexByte(token, '['); idx > 0 {
		hashType, ok := sigHashSuffixes[strings.ToUpper(token[idx:])]
		if !ok {
			return nil, fmt.Errorf("%w: sighash suffix %q", ErrInvalidAsm, token[idx:])
		}
		sigHash = []byte{byte(hashType)}
		token = token[:idx]
	}
	data, err := hex.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: token %q", ErrInvalidAsm, token)
	}
	return append(data, sigHash...), nil
}

// RedeemScript returns the last data push of a P2SH signature script, which is the
// serialized redeem script. It returns nil when the script pushes nothing or does not parse.
func RedeemScript(sigScript []byte) []byte {
	if len(sigScript) == 0 {
		return nil
	}
	pushes, err := txscript.PushedData(sigScript)
	if err != nil || len(pushes) == 0 {
		return nil
	}
	return pushes[len(pushes)-1]
}
