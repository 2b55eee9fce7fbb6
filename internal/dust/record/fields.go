package record

// Transaction record fields.
const (
	FieldTxnHash           = "Txn Hash"
	FieldFeeRate           = "Txn Fee Rate"
	FieldInputUTXODetails  = "Txn Input UTXO Details"
	FieldInputDetails      = "Txn Input Details"
	FieldOutputDetails     = "Txn Output Details"
	FieldOutputUTXODetails = "Txn Output UTXO Details"
	FieldSentUTXOs         = "sent_utxo_uxns"
	FieldDustAttacker      = "dust_attacker"
	FieldAttackEffect      = "attack_effect"
	FieldTotalVictimCost   = "total_victim_cost_btc"
	FieldTotalAttackCost   = "total_attack_cost_btc"
)

// Entry fields.
const (
	FieldInputHash         = "inputHash"
	FieldOutputHash        = "outputHash"
	FieldAddress           = "address"
	FieldScriptPubKey      = "scriptPubKey"
	FieldScriptSig         = "scriptSig"
	FieldWitness           = "txinwitness"
	FieldTxID              = "txid"
	FieldAmount            = "amount"
	FieldCategoryID        = "category_id"
	FieldScriptType        = "scriptType"
	FieldBytes             = "bytes"
	FieldVBytes            = "vbytes"
	FieldSpendPath         = "spendPath"
	FieldVictimCost        = "victim_cost_btc"
	FieldAttackCost        = "attack_cost_btc"
	FieldVictimAttackRatio = "victim_attack_ratio"
)

// Script sub-object fields.
const (
	FieldHex = "hex"
	FieldAsm = "asm"
)

// DustAttackerYes and DustAttackerNo are the values of FieldDustAttacker.
const (
	DustAttackerYes = "1"
	DustAttackerNo  = "0"
)
