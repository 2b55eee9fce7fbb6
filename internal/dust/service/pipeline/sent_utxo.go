package pipeline

import (
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
)

// sentCandidates maps each funding txid of the victim's input UTXOs to the amounts,
// in satoshis, it contributed.
func sentCandidates(r record.Record) (map[string][]uint64, error) {
	inputs, ok, err := r.Collection(record.FieldInputUTXODetails)
	if err != nil || !ok {
		return nil, err
	}
	candidates := make(map[string][]uint64)
	for _, e := range inputs.Entries() {
		txid, _ := e.String(record.FieldTxID)
		sats, ok := entrySatoshis(e)
		if txid == "" || !ok || sats == 0 {
			continue
		}
		candidates[txid] = append(candidates[txid], sats)
	}
	return candidates, nil
}

// matchSentOutput returns the first output paying one of the candidate amounts.
func matchSentOutput(outputs []record.Entry, candidates []uint64) (record.Entry, bool) {
	if len(candidates) == 0 {
		return record.Entry{}, false
	}
	for _, o := range outputs {
		sats, ok := entrySatoshis(o)
		if !ok {
			continue
		}
		for _, c := range candidates {
			if sats == c {
				return o, true
			}
		}
	}
	return record.Entry{}, false
}

func entrySatoshis(e record.Entry) (uint64, bool) {
	amount, ok := e.Float(record.FieldAmount)
	if !ok {
		return 0, false
	}
	sats, err := bitcoin.BtcToSatoshis(amount)
	if err != nil {
		return 0, false
	}
	return sats, true
}
