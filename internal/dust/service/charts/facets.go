package charts

import (
	"image/color"
	"strconv"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
)

// Facet selects the victim inputs of one address family.
type Facet struct {
	Label      string
	ScriptType model.ScriptType
	// SpendPath narrows P2TR inputs; empty matches any spend.
	SpendPath model.SpendPath
	Color     color.Color
	// Categories lists the script categories drawn separately, in legend order.
	Categories []int
}

func (f Facet) matches(t model.ScriptType, path model.SpendPath) bool {
	if t != f.ScriptType {
		return false
	}
	return f.SpendPath == model.SpendPathNone || f.SpendPath == path
}

var singleSigFacets = []Facet{
	{Label: "P2TR (Key Path)", ScriptType: model.P2TR, SpendPath: model.SpendPathKey, Color: rgb(0xFF8400)},
	{Label: "P2WPKH", ScriptType: model.P2WPKH, Color: rgb(0x01936B)},
	{Label: "P2PKH", ScriptType: model.P2PKH, Color: rgb(0x0012D7)},
	{Label: "P2SH-P2WPKH", ScriptType: model.P2SHP2WPKH, Color: rgb(0xE62DC7)},
}

var scriptFacets = []Facet{
	{Label: "P2TR (Script Path)", ScriptType: model.P2TR, SpendPath: model.SpendPathScript, Color: rgb(0x9467BD), Categories: []int{10, 9}},
	{Label: "P2WSH", ScriptType: model.P2WSH, Color: rgb(0x2CA02C), Categories: []int{1, 3, 2, 8}},
	{Label: "P2SH", ScriptType: model.P2SH, Color: rgb(0x1F77B4), Categories: []int{1, 2, 3, 8, 4, 5}},
	{Label: "P2SH-P2WSH", ScriptType: model.P2SHP2WSH, Color: rgb(0xD62728), Categories: []int{1, 2, 3, 4}},
}

// Script categories assigned upstream to spending scripts.
const (
	CategoryMultiSig    = 1
	CategoryCustom      = 6
	CategoryUnknown     = 7
	CategorySingleSig   = 8
	defaultCategory     = CategoryUnknown
	lockedUTXOBytes     = 32
	dustThresholdSats   = 546
	minMultiSigMedianAt = 2
)

var categoryNames = map[int]string{
	1:  "Multi-Sig",
	2:  "Timelock-CLTV",
	3:  "Timelock-CSV",
	4:  "Hashlock / HTLC",
	5:  "Conditional (IF/ELSE)",
	6:  "Custom",
	7:  "Unknown",
	8:  "Single-Sig",
	9:  "BRC-20",
	10: "Ordinals",
}

var categoryColors = map[int]color.Color{
	1:  rgb(0x1F77B4),
	2:  rgb(0xFF7F0E),
	3:  rgb(0x2CA02C),
	4:  rgb(0xD62728),
	5:  rgb(0x9467BD),
	6:  rgb(0x8C564B),
	7:  rgb(0xE377C2),
	8:  rgb(0x17BECF),
	9:  rgb(0xBCBD22),
	10: rgb(0x7F7F7F),
}

func categoryName(c int) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Category " + strconv.Itoa(c)
}

func rgb(v uint32) color.Color {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
