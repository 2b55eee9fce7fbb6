package charts

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
)

// Transaction is what the ROI charts need from one flagged victim transaction.
type Transaction struct {
	File  string
	Index int

	Effect           float64
	VictimVBytes     float64
	AttackVBytes     float64
	VictimFeeRate    float64
	HasVictimFeeRate bool
	AttackFeeRates   []float64
	Inputs           []InputRatio
}

// InputRatio is one victim input with its share of the attack cost, in percent.
type InputRatio struct {
	ScriptType  model.ScriptType
	SpendPath   model.SpendPath
	Category    int
	HasCategory bool
	Ratio       float64
}

// UTXO is one spent output of the script type studied by the bytes CDF chart.
type UTXO struct {
	Category   int
	VBytes     float64
	Sats       uint64
	Signatures int
}

// Dataset holds everything the charts are drawn from.
type Dataset struct {
	Transactions []Transaction
	UTXOs        []UTXO
}

func (d *Dataset) merge(o Dataset) {
	d.Transactions = append(d.Transactions, o.Transactions...)
	d.UTXOs = append(d.UTXOs, o.UTXOs...)
}

// SortByEffect orders transactions by ascending attack effect. Ties keep file order.
func (d *Dataset) SortByEffect() {
	sort.SliceStable(d.Transactions, func(i, j int) bool {
		a, b := d.Transactions[i], d.Transactions[j]
		if a.Effect != b.Effect {
			return a.Effect < b.Effect
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Index < b.Index
	})
}

// extractDocument pulls chart data out of every record of one file. Only records
// flagged as dust attacks feed the ROI charts; every record feeds the CDF.
func extractDocument(rel string, doc *record.Document, cdfType model.ScriptType) Dataset {
	var ds Dataset
	for i, r := range doc.Records() {
		ds.UTXOs = append(ds.UTXOs, extractUTXOs(r, cdfType)...)
		if !r.IsDustAttack() {
			continue
		}
		if tx, ok := extractTransaction(r); ok {
			tx.File = rel
			tx.Index = i
			ds.Transactions = append(ds.Transactions, tx)
		}
	}
	return ds
}

func extractTransaction(r record.Record) (Transaction, bool) {
	var tx Transaction
	if r.Has(record.FieldAttackEffect) {
		effect, ok := r.Float(record.FieldAttackEffect)
		if !ok {
			return tx, false
		}
		tx.Effect = effect
	}
	tx.VictimFeeRate, tx.HasVictimFeeRate = r.Float(record.FieldFeeRate)

	if inputs, ok, err := r.Collection(record.FieldInputUTXODetails); err == nil && ok {
		for _, e := range inputs.Entries() {
			tx.VictimVBytes += entrySize(e)
			if in, ok := inputRatio(e); ok {
				tx.Inputs = append(tx.Inputs, in)
			}
		}
	}

	for _, sub := range r.SubTransactions() {
		if rate, ok := sub.Float(record.FieldFeeRate); ok {
			tx.AttackFeeRates = append(tx.AttackFeeRates, rate)
		}
		utxo, ok, err := sub.Collection(record.FieldOutputUTXODetails)
		if err != nil || !ok {
			continue
		}
		for _, e := range utxo.Entries() {
			tx.AttackVBytes += entrySize(e)
		}
	}
	return tx, true
}

func inputRatio(e record.Entry) (InputRatio, bool) {
	label, ok := e.String(record.FieldScriptType)
	if !ok {
		return InputRatio{}, false
	}
	ratio, ok := percent(e)
	if !ok {
		return InputRatio{}, false
	}
	in := InputRatio{
		ScriptType: model.ParseScriptType(label),
		SpendPath:  spendPath(e, label),
		Ratio:      ratio,
	}
	in.Category, in.HasCategory = e.Int(record.FieldCategoryID)
	return in, true
}

// spendPath reads spendPath, falling back to P2TR_key_path style scriptType labels.
func spendPath(e record.Entry, label string) model.SpendPath {
	if s, ok := e.String(record.FieldSpendPath); ok {
		if p := model.ParseSpendPath(s); p != model.SpendPathNone {
			return p
		}
	}
	return model.ParseSpendPath(label)
}

func percent(e record.Entry) (float64, bool) {
	v, ok := e.Get(record.FieldVictimAttackRatio)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, "%", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// extractUTXOs collects the entries of cdfType spent by r: the record itself when a
// snapshot lists UTXOs at the top level, and its input UTXO details.
func extractUTXOs(r record.Record, cdfType model.ScriptType) []UTXO {
	var out []UTXO
	if u, ok := utxoOf(r.AsEntry(), cdfType); ok {
		out = append(out, u)
	}
	inputs, ok, err := r.Collection(record.FieldInputUTXODetails)
	if err != nil || !ok {
		return out
	}
	for _, e := range inputs.Entries() {
		if u, ok := utxoOf(e, cdfType); ok {
			out = append(out, u)
		}
	}
	return out
}

func utxoOf(e record.Entry, cdfType model.ScriptType) (UTXO, bool) {
	label, ok := e.String(record.FieldScriptType)
	if !ok || model.ParseScriptType(label) != cdfType {
		return UTXO{}, false
	}
	u := UTXO{Category: defaultCategory, VBytes: entrySize(e)}
	if c, ok := e.Int(record.FieldCategoryID); ok {
		u.Category = c
	}
	if amount, ok := e.Float(record.FieldAmount); ok {
		if sats, err := bitcoin.BtcToSatoshis(amount); err == nil {
			u.Sats = sats
		}
	}
	u.Signatures = signatureCount(e)
	return u, true
}

// signatureCount is the witness stack size minus the witness script, or the number of
// SIGHASH_ALL signatures in the scriptSig asm for legacy spends.
func signatureCount(e record.Entry) int {
	if v, ok := e.Get(record.FieldWitness); ok {
		if list, ok := v.([]interface{}); ok && len(list) > 0 {
			return len(list) - 1
		}
	}
	_, asm := e.ScriptSig()
	n := 0
	for _, token := range strings.Fields(asm) {
		if strings.HasSuffix(strings.ToUpper(token), "[ALL]") && len(token) > len("[ALL]") {
			n++
		}
	}
	return n
}

func entrySize(e record.Entry) float64 {
	if v, ok := e.Float(record.FieldVBytes); ok {
		return v
	}
	v, _ := e.Float(record.FieldBytes)
	return v
}
