// decoder.go - lowers a run of 6502 bytes into the uop IR (spec 4.2).
package main

// MaxBlockOps bounds how many instructions one compiled block may span,
// keeping worst-case guest length (and therefore worst-case host code
// size against the arena's fixed slot) predictable.
const MaxBlockOps = 256

// Decoder turns guest bytes into Blocks. It never writes to the bus; it
// only reads code bytes, operand bytes included, at compile time. A
// promoted address gets uops with Dynamic set; the operand is still read.
type Decoder struct {
	bus  Bus
	opts RuntimeOptions
	log  *ErrorLog
}

func NewDecoder(bus Bus, opts RuntimeOptions, log *ErrorLog) *Decoder {
	return &Decoder{bus: bus, opts: opts, log: log}
}

// DecodeBlock decodes instructions starting at addr until a control-flow
// instruction or an invalid opcode ends the block, or MaxBlockOps is
// reached. The slot size is not consulted here.
func (d *Decoder) DecodeBlock(addr uint16, dynamic bool) Block {
	block := Block{GuestAddr: addr, FallsThrough: true}
	cur := addr

	for ops := 0; ops < MaxBlockOps; ops++ {
		opcode := d.bus.ReadByte(cur)
		info := opcodeTable[opcode]

		if info.Mnemonic == MnInvalid {
			d.log.Add(DecodeError(cur, opcode, "undocumented or illegal opcode"))
			block.Uops = append(block.Uops, Uop{Kind: UopTrap, Operand: uint16(cur)})
			block.GuestLen = int(cur-addr) + 1
			block.FallsThrough = false
			return block
		}

		uops, terminal := d.lower(cur, opcode, info, dynamic)
		block.Uops = append(block.Uops, uops...)

		cur += uint16(info.Len)
		if terminal {
			block.GuestLen = int(cur - addr)
			block.FallsThrough = isFallthroughMnemonic(info.Mnemonic)
			return block
		}
	}

	block.GuestLen = int(cur - addr)
	return block
}

func isFallthroughMnemonic(mn Mnemonic) bool {
	switch mn {
	case MnJMP, MnJSR, MnRTS, MnRTI, MnBRK:
		return false
	default:
		return true
	}
}

func isControlFlow(mn Mnemonic) bool {
	switch mn {
	case MnJMP, MnJSR, MnRTS, MnRTI, MnBRK,
		MnBCC, MnBCS, MnBEQ, MnBMI, MnBNE, MnBPL, MnBVC, MnBVS:
		return true
	default:
		return false
	}
}

// lower converts one decoded instruction into its uop sequence, and
// reports whether the block must end here.
func (d *Decoder) lower(addr uint16, opcode uint8, info OpcodeInfo, dynamic bool) ([]Uop, bool) {
	operand := d.readOperand(addr, info)
	cycles := info.Cycles
	crosses := pageCrossable(info.Mode)

	base := Uop{
		Mode:      info.Mode,
		Operand:   operand,
		Cycles:    cycles,
		PageCross: crosses,
		Dynamic:   dynamic,
	}

	switch info.Mnemonic {
	case MnLDA:
		return d.loadTo("A", base), false
	case MnLDX:
		return d.loadTo("X", base), false
	case MnLDY:
		return d.loadTo("Y", base), false
	case MnSTA:
		return d.storeFrom("A", base), false
	case MnSTX:
		return d.storeFrom("X", base), false
	case MnSTY:
		return d.storeFrom("Y", base), false

	case MnADC, MnSBC:
		kind := UopAdd
		if info.Mnemonic == MnSBC {
			kind = UopSub
		}
		if isBCDOpcode(info.Mnemonic) {
			// Decimal-mode arithmetic is checked at run time (the D flag
			// is not known until execution); the emitter guards this uop
			// with a runtime branch on D and falls to UopTrap when set,
			// per the BCD supplement.
			u := base
			u.Kind = kind
			u.Reg = "A"
			return []Uop{u}, false
		}
		u := base
		u.Kind = kind
		u.Reg = "A"
		return []Uop{u}, false

	case MnAND:
		return d.alu(UopAnd, "A", base), false
	case MnORA:
		return d.alu(UopOr, "A", base), false
	case MnEOR:
		return d.alu(UopXor, "A", base), false

	case MnCMP:
		return d.compare("A", base), false
	case MnCPX:
		return d.compare("X", base), false
	case MnCPY:
		return d.compare("Y", base), false

	case MnINC:
		u := base
		u.Kind = UopIncDec
		u.Operand = operand // +1 implied by mem target (no register)
		return []Uop{u}, false
	case MnDEC:
		u := base
		u.Kind = UopIncDec
		u.Flag = 0xFF // sentinel: decrement
		return []Uop{u}, false
	case MnINX:
		return []Uop{{Kind: UopIncDec, Reg: "X"}}, false
	case MnINY:
		return []Uop{{Kind: UopIncDec, Reg: "Y"}}, false
	case MnDEX:
		return []Uop{{Kind: UopIncDec, Reg: "X", Flag: 0xFF}}, false
	case MnDEY:
		return []Uop{{Kind: UopIncDec, Reg: "Y", Flag: 0xFF}}, false

	case MnASL:
		return []Uop{{Kind: UopShiftLeft, Mode: info.Mode, Operand: operand}}, false
	case MnLSR:
		return []Uop{{Kind: UopShiftRight, Mode: info.Mode, Operand: operand}}, false
	case MnROL:
		return []Uop{{Kind: UopShiftLeft, Mode: info.Mode, Operand: operand, Flag: 1}}, false
	case MnROR:
		return []Uop{{Kind: UopShiftRight, Mode: info.Mode, Operand: operand, Flag: 1}}, false

	case MnTAX:
		return []Uop{{Kind: UopTransfer, Reg: "A->X"}}, false
	case MnTAY:
		return []Uop{{Kind: UopTransfer, Reg: "A->Y"}}, false
	case MnTXA:
		return []Uop{{Kind: UopTransfer, Reg: "X->A"}}, false
	case MnTYA:
		return []Uop{{Kind: UopTransfer, Reg: "Y->A"}}, false
	case MnTSX:
		return []Uop{{Kind: UopTransfer, Reg: "S->X"}}, false
	case MnTXS:
		return []Uop{{Kind: UopTransfer, Reg: "X->S", Flag: 0xFF}}, false // no N/Z update

	case MnPHA:
		return []Uop{{Kind: UopPush, Reg: "A"}}, false
	case MnPHP:
		return []Uop{{Kind: UopPush, Reg: "P"}}, false
	case MnPLA:
		return []Uop{{Kind: UopPull, Reg: "A"}}, false
	case MnPLP:
		return []Uop{{Kind: UopPull, Reg: "P"}}, false

	case MnCLC:
		return []Uop{{Kind: UopSetFlag, Flag: flagC, FlagSet: false}}, false
	case MnSEC:
		return []Uop{{Kind: UopSetFlag, Flag: flagC, FlagSet: true}}, false
	case MnCLI:
		return []Uop{{Kind: UopSetFlag, Flag: flagI, FlagSet: false}}, false
	case MnSEI:
		return []Uop{{Kind: UopSetFlag, Flag: flagI, FlagSet: true}}, false
	case MnCLV:
		return []Uop{{Kind: UopSetFlag, Flag: flagV, FlagSet: false}}, false
	case MnCLD:
		return []Uop{{Kind: UopSetFlag, Flag: flagD, FlagSet: false}}, false
	case MnSED:
		return []Uop{{Kind: UopSetFlag, Flag: flagD, FlagSet: true}}, false

	case MnBIT:
		return []Uop{{Kind: UopCompare, Mode: info.Mode, Operand: operand, Reg: "BIT"}}, false

	case MnNOP:
		return []Uop{{Kind: UopNop}}, false

	case MnBCC, MnBCS, MnBEQ, MnBMI, MnBNE, MnBPL, MnBVC, MnBVS:
		target := uint16(int32(addr) + int32(info.Len) + int32(int8(operand)))
		return []Uop{{Kind: UopBranch, Operand: target, Flag: branchFlagFor(info.Mnemonic), FlagSet: branchSenseFor(info.Mnemonic)}}, true

	case MnJMP:
		return []Uop{{Kind: UopJump, Mode: info.Mode, Operand: operand, Reg: "JMP"}}, true
	case MnJSR:
		return []Uop{{Kind: UopJump, Operand: operand, Reg: "JSR"}}, true
	case MnRTS:
		return []Uop{{Kind: UopJump, Reg: "RTS"}}, true
	case MnRTI:
		return []Uop{{Kind: UopJump, Reg: "RTI"}}, true
	case MnBRK:
		return []Uop{{Kind: UopJump, Reg: "BRK"}}, true

	default:
		d.log.Add(DecodeError(addr, opcode, "opcode recognized but not yet lowered"))
		return []Uop{{Kind: UopTrap, Operand: uint16(addr)}}, true
	}
}

func (d *Decoder) loadTo(reg string, base Uop) []Uop {
	if base.Mode == AddrImmediate {
		u := base
		u.Kind = UopLoadImm
		u.Reg = reg
		return []Uop{u}
	}
	u := base
	u.Kind = UopLoadMem
	u.Reg = reg
	return []Uop{u}
}

func (d *Decoder) storeFrom(reg string, base Uop) []Uop {
	u := base
	u.Kind = UopStoreMem
	u.Reg = reg
	return []Uop{u}
}

func (d *Decoder) alu(kind UopKind, reg string, base Uop) []Uop {
	u := base
	u.Kind = kind
	u.Reg = reg
	return []Uop{u}
}

func (d *Decoder) compare(reg string, base Uop) []Uop {
	u := base
	u.Kind = UopCompare
	u.Reg = reg
	return []Uop{u}
}

// readOperand fetches the operand bytes following opcode at addr,
// per its addressing mode, for baking into the Uop at compile time.
// lower calls it for every instruction, dynamic or not.
func (d *Decoder) readOperand(addr uint16, info OpcodeInfo) uint16 {
	switch info.Len {
	case 1:
		return 0
	case 2:
		return uint16(d.bus.ReadByte(addr + 1))
	case 3:
		lo := uint16(d.bus.ReadByte(addr + 1))
		hi := uint16(d.bus.ReadByte(addr + 2))
		return lo | hi<<8
	default:
		return 0
	}
}

func branchFlagFor(mn Mnemonic) byte {
	switch mn {
	case MnBCC, MnBCS:
		return flagC
	case MnBEQ, MnBNE:
		return flagZ
	case MnBMI, MnBPL:
		return flagN
	case MnBVC, MnBVS:
		return flagV
	default:
		return 0
	}
}

func branchSenseFor(mn Mnemonic) bool {
	switch mn {
	case MnBCS, MnBEQ, MnBMI, MnBVS:
		return true
	default:
		return false
	}
}
