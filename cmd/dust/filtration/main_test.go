package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const snapshot = `[
  {"Txn Hash": "a", "sent_utxo_uxns": [{"Txn Fee Rate": 1}, {"Txn Fee Rate": 2}]},
  {"Txn Hash": "b", "sent_utxo_uxns": [{"Txn Fee Rate": 3}, {"Txn Fee Rate": 100}]}
]`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.json"), []byte(snapshot), 0o644))

	cfg := config{
		InputDir:      in,
		OutputDir:     out,
		Network:       model.Mainnet,
		Workers:       2,
		IQRMultiplier: 1.5,
		MetricsFile:   filepath.Join(dir, "dust.prom"),
	}
	require.NoError(t, run(context.Background(), cfg, zap.NewNop()))

	// rates 1, 2, 3, 100: Q1 1.75, Q3 27.25, upper fence 65.5
	written, err := os.ReadFile(filepath.Join(out, "a.json"))
	require.NoError(t, err)
	doc, err := record.Decode(written)
	require.NoError(t, err)
	var verdicts []string
	for _, r := range doc.Records() {
		v, _ := r.String(record.FieldDustAttacker)
		verdicts = append(verdicts, v)
	}
	assert.Equal(t, []string{record.DustAttackerYes, record.DustAttackerNo}, verdicts)

	metricsText, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), "dustinsight_")
}

func TestRun_NoFeeRates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"Txn Hash": "a"}`), 0o644))

	cfg := config{InputDir: dir, Network: model.Mainnet, Workers: 1, IQRMultiplier: 1.5}
	require.NoError(t, run(context.Background(), cfg, zap.NewNop()))

	unchanged, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"Txn Hash": "a"}`, string(unchanged))
}

func TestRun_MissingInput(t *testing.T) {
	err := run(context.Background(), config{InputDir: filepath.Join(t.TempDir(), "missing"), Network: model.Mainnet}, zap.NewNop())
	require.Error(t, err)
}
