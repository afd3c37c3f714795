package sleigh

import "fmt"

// OpCode identifies a p-code operation. The numeric values mirror the
// engine's opcode enumeration and are stable across engine versions.
type OpCode int32

const (
	OpCopy           OpCode = 1  // copy one operand to another
	OpLoad           OpCode = 2  // load from a dynamic address
	OpStore          OpCode = 3  // store at a dynamic address
	OpBranch         OpCode = 4  // always branch
	OpCBranch        OpCode = 5  // conditional branch
	OpBranchInd      OpCode = 6  // indirect branch
	OpCall           OpCode = 7  // call with absolute target
	OpCallInd        OpCode = 8  // call through an indirect target
	OpCallOther      OpCode = 9  // user-defined (pseudo) operation
	OpReturn         OpCode = 10 // return from subroutine
	OpIntEqual       OpCode = 11
	OpIntNotEqual    OpCode = 12
	OpIntSLess       OpCode = 13
	OpIntSLessEqual  OpCode = 14
	OpIntLess        OpCode = 15
	OpIntLessEqual   OpCode = 16
	OpIntZExt        OpCode = 17
	OpIntSExt        OpCode = 18
	OpIntAdd         OpCode = 19
	OpIntSub         OpCode = 20
	OpIntCarry       OpCode = 21
	OpIntSCarry      OpCode = 22
	OpIntSBorrow     OpCode = 23
	OpInt2Comp       OpCode = 24
	OpIntNegate      OpCode = 25
	OpIntXor         OpCode = 26
	OpIntAnd         OpCode = 27
	OpIntOr          OpCode = 28
	OpIntLeft        OpCode = 29
	OpIntRight       OpCode = 30
	OpIntSRight      OpCode = 31
	OpIntMult        OpCode = 32
	OpIntDiv         OpCode = 33
	OpIntSDiv        OpCode = 34
	OpIntRem         OpCode = 35
	OpIntSRem        OpCode = 36
	OpBoolNegate     OpCode = 37
	OpBoolXor        OpCode = 38
	OpBoolAnd        OpCode = 39
	OpBoolOr         OpCode = 40
	OpFloatEqual     OpCode = 41
	OpFloatNotEqual  OpCode = 42
	OpFloatLess      OpCode = 43
	OpFloatLessEqual OpCode = 44
	// 45 is reserved by the engine and never emitted.
	OpFloatNaN         OpCode = 46
	OpFloatAdd         OpCode = 47
	OpFloatDiv         OpCode = 48
	OpFloatMult        OpCode = 49
	OpFloatSub         OpCode = 50
	OpFloatNeg         OpCode = 51
	OpFloatAbs         OpCode = 52
	OpFloatSqrt        OpCode = 53
	OpFloatInt2Float   OpCode = 54
	OpFloatFloat2Float OpCode = 55
	OpFloatTrunc       OpCode = 56
	OpFloatCeil        OpCode = 57
	OpFloatFloor       OpCode = 58
	OpFloatRound       OpCode = 59
	OpMultiEqual       OpCode = 60 // analysis-only, not produced by decoding
	OpIndirect         OpCode = 61 // analysis-only, not produced by decoding
	OpPiece            OpCode = 62
	OpSubPiece         OpCode = 63
	OpCast             OpCode = 64 // analysis-only, not produced by decoding
	OpPtrAdd           OpCode = 65
	OpPtrSub           OpCode = 66
	OpSegmentOp        OpCode = 67
	OpCPoolRef         OpCode = 68
	OpNew              OpCode = 69
	OpInsert           OpCode = 70
	OpExtract          OpCode = 71
	OpPopCount         OpCode = 72
	OpLzCount          OpCode = 73

	opMax OpCode = 74
)

var opcodeNames = [opMax]string{
	OpCopy:             "COPY",
	OpLoad:             "LOAD",
	OpStore:            "STORE",
	OpBranch:           "BRANCH",
	OpCBranch:          "CBRANCH",
	OpBranchInd:        "BRANCHIND",
	OpCall:             "CALL",
	OpCallInd:          "CALLIND",
	OpCallOther:        "CALLOTHER",
	OpReturn:           "RETURN",
	OpIntEqual:         "INT_EQUAL",
	OpIntNotEqual:      "INT_NOTEQUAL",
	OpIntSLess:         "INT_SLESS",
	OpIntSLessEqual:    "INT_SLESSEQUAL",
	OpIntLess:          "INT_LESS",
	OpIntLessEqual:     "INT_LESSEQUAL",
	OpIntZExt:          "INT_ZEXT",
	OpIntSExt:          "INT_SEXT",
	OpIntAdd:           "INT_ADD",
	OpIntSub:           "INT_SUB",
	OpIntCarry:         "INT_CARRY",
	OpIntSCarry:        "INT_SCARRY",
	OpIntSBorrow:       "INT_SBORROW",
	OpInt2Comp:         "INT_2COMP",
	OpIntNegate:        "INT_NEGATE",
	OpIntXor:           "INT_XOR",
	OpIntAnd:           "INT_AND",
	OpIntOr:            "INT_OR",
	OpIntLeft:          "INT_LEFT",
	OpIntRight:         "INT_RIGHT",
	OpIntSRight:        "INT_SRIGHT",
	OpIntMult:          "INT_MULT",
	OpIntDiv:           "INT_DIV",
	OpIntSDiv:          "INT_SDIV",
	OpIntRem:           "INT_REM",
	OpIntSRem:          "INT_SREM",
	OpBoolNegate:       "BOOL_NEGATE",
	OpBoolXor:          "BOOL_XOR",
	OpBoolAnd:          "BOOL_AND",
	OpBoolOr:           "BOOL_OR",
	OpFloatEqual:       "FLOAT_EQUAL",
	OpFloatNotEqual:    "FLOAT_NOTEQUAL",
	OpFloatLess:        "FLOAT_LESS",
	OpFloatLessEqual:   "FLOAT_LESSEQUAL",
	OpFloatNaN:         "FLOAT_NAN",
	OpFloatAdd:         "FLOAT_ADD",
	OpFloatDiv:         "FLOAT_DIV",
	OpFloatMult:        "FLOAT_MULT",
	OpFloatSub:         "FLOAT_SUB",
	OpFloatNeg:         "FLOAT_NEG",
	OpFloatAbs:         "FLOAT_ABS",
	OpFloatSqrt:        "FLOAT_SQRT",
	OpFloatInt2Float:   "FLOAT_INT2FLOAT",
	OpFloatFloat2Float: "FLOAT_FLOAT2FLOAT",
	OpFloatTrunc:       "FLOAT_TRUNC",
	OpFloatCeil:        "FLOAT_CEIL",
	OpFloatFloor:       "FLOAT_FLOOR",
	OpFloatRound:       "FLOAT_ROUND",
	OpMultiEqual:       "MULTIEQUAL",
	OpIndirect:         "INDIRECT",
	OpPiece:            "PIECE",
	OpSubPiece:         "SUBPIECE",
	OpCast:             "CAST",
	OpPtrAdd:           "PTRADD",
	OpPtrSub:           "PTRSUB",
	OpSegmentOp:        "SEGMENTOP",
	OpCPoolRef:         "CPOOLREF",
	OpNew:              "NEW",
	OpInsert:           "INSERT",
	OpExtract:          "EXTRACT",
	OpPopCount:         "POPCOUNT",
	OpLzCount:          "LZCOUNT",
}

// Valid reports whether c is an opcode the engine can emit.
func (c OpCode) Valid() bool {
	return c > 0 && c < opMax && opcodeNames[c] != ""
}

// String returns the engine's canonical name for the opcode, such as
// "COPY" or "INT_ADD". Unknown values format as OpCode(n).
func (c OpCode) String() string {
	if c.Valid() {
		return opcodeNames[c]
	}
	return fmt.Sprintf("OpCode(%d)", int32(c))
}
