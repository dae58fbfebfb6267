package cpu

// OpType is the instruction category.
type OpType int

//go:generate go tool stringer -linecomment -type=OpType
const (
	TYPE_R       = OpType(0) // R
	TYPE_I       = OpType(1) // I
	TYPE_MEM     = OpType(2) // MEM
	TYPE_U       = OpType(3) // U
	TYPE_UNKNOWN = OpType(4) // UNKNOWN
)

// Op is an instruction mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_UNKNOWN = Op(0) // unknown

	// R-type
	OP_ADD = Op(1) // add
	OP_SUB = Op(2) // sub
	OP_AND = Op(3) // and
	OP_OR  = Op(4) // or
	OP_XOR = Op(5) // xor
	OP_NOR = Op(6) // nor
	OP_SLT = Op(7) // slt
	OP_SLL = Op(8) // sll
	OP_SRA = Op(9) // sra

	// I-type
	OP_ADDI = Op(10) // addi
	OP_ANDI = Op(11) // andi
	OP_ORI  = Op(12) // ori
	OP_XORI = Op(13) // xori
	OP_SLTI = Op(14) // slti

	// MEM-type
	OP_LW = Op(15) // lw
	OP_LB = Op(16) // lb
	OP_SW = Op(17) // sw
	OP_SB = Op(18) // sb

	// U-type
	OP_LUI = Op(19) // lui
)

// opMap maps mnemonics to operations. Lookups are exact and case sensitive.
var opMap = map[string]Op{
	"add": OP_ADD,
	"sub": OP_SUB,
	"and": OP_AND,
	"or":  OP_OR,
	"xor": OP_XOR,
	"nor": OP_NOR,
	"slt": OP_SLT,
	"sll": OP_SLL,
	"sra": OP_SRA,

	"addi": OP_ADDI,
	"andi": OP_ANDI,
	"ori":  OP_ORI,
	"xori": OP_XORI,
	"slti": OP_SLTI,

	"lw": OP_LW,
	"lb": OP_LB,
	"sw": OP_SW,
	"sb": OP_SB,

	"lui": OP_LUI,
}

// LookupOp returns the operation for a mnemonic, or OP_UNKNOWN.
func LookupOp(mnemonic string) Op {
	op, ok := opMap[mnemonic]
	if !ok {
		return OP_UNKNOWN
	}
	return op
}

// Type returns the category of the operation.
func (op Op) Type() OpType {
	switch {
	case op >= OP_ADD && op <= OP_SRA:
		return TYPE_R
	case op >= OP_ADDI && op <= OP_SLTI:
		return TYPE_I
	case op >= OP_LW && op <= OP_SB:
		return TYPE_MEM
	case op == OP_LUI:
		return TYPE_U
	default:
		return TYPE_UNKNOWN
	}
}

// Classify returns the category of a mnemonic.
func Classify(mnemonic string) OpType {
	return LookupOp(mnemonic).Type()
}
