// Package main classifies a single output descriptor given on the command line.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Network   model.Network `long:"network" env:"DUST_CLASSIFIER_NETWORK" description:"network used to decode addresses" default:"mainnet"`
	ScriptHex string        `long:"script-hex" env:"DUST_CLASSIFIER_SCRIPT_HEX" description:"locking script as hex"`
	ScriptAsm string        `long:"script-asm" env:"DUST_CLASSIFIER_SCRIPT_ASM" description:"locking script as asm"`
	Address   string        `long:"address" env:"DUST_CLASSIFIER_ADDRESS" description:"output address"`
	ScriptSig string        `long:"script-sig" env:"DUST_CLASSIFIER_SCRIPT_SIG" description:"spending scriptSig as hex, its last push is used as redeem script"`
}

func main() {
	cfg := config{}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(context.Background(), cfg, os.Stdout, logger); err != nil {
		logger.Fatal("classifier failed", zap.Error(err))
	}
}

func run(_ context.Context, cfg config, out io.Writer, logger *zap.Logger) error {
	classifier, err := bitcoin.NewClassifier(cfg.Network)
	if err != nil {
		return fmt.Errorf("init classifier: %w", err)
	}

	d := model.OutputDescriptor{ScriptAsm: cfg.ScriptAsm, Address: cfg.Address}
	if cfg.ScriptHex != "" {
		if d.ScriptBytes, err = hex.DecodeString(cfg.ScriptHex); err != nil {
			logger.Warn("script hex is not valid, ignoring it", zap.Error(err))
			d.ScriptBytes = nil
		}
	}
	if cfg.ScriptSig != "" {
		sig, err := hex.DecodeString(cfg.ScriptSig)
		if err != nil {
			return fmt.Errorf("decode script sig: %w", err)
		}
		d.RedeemScript = bitcoin.RedeemScript(sig)
	}
	if d.IsEmpty() {
		logger.Warn("descriptor has no script or address")
	}

	scriptType := classifier.Classify(d)
	length := classifier.ScriptLength(d)
	_, err = fmt.Fprintf(out, "scriptType=%s bytes=%d vbytes=%d\n",
		scriptType, length, bitcoin.OutputVirtualSize(length, scriptType))
	return err
}
