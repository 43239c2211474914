// image.go - loading a 6502 memory image for the CLI to run (spec
// §2.4). A raw image is just the bytes to drop into guest RAM at a
// load address; a test fixture is sometimes packaged as a host ELF
// object instead (a ".text"-equivalent section holding 6502 bytes,
// convenient for reusing the host's own build/symbol tooling to author
// fixtures), so LoadImage tries a raw read first and falls back to
// pulling a named section out of an ELF container.
package main

import (
	"bytes"
	"debug/elf"
	"fmt"
	"os"
)

// sixROMSection is the ELF section name a packaged fixture stores its
// 6502 bytes under when it isn't a raw binary image.
const sixROMSection = ".sixrom"

// LoadImage reads path and returns its bytes. If the file is not a
// valid raw image (i.e. it parses as an ELF object), the bytes are
// pulled from its .sixrom section instead.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: read %s: %w", path, err)
	}

	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		// Not an ELF object; treat as a raw 6502 image.
		return data, nil
	}
	defer ef.Close()

	section := ef.Section(sixROMSection)
	if section == nil {
		return nil, fmt.Errorf("image: %s is an ELF object with no %s section", path, sixROMSection)
	}
	rom, err := section.Data()
	if err != nil {
		return nil, fmt.Errorf("image: read %s section: %w", sixROMSection, err)
	}
	return rom, nil
}

// ExtractSymbolBytes pulls the byte range of a named function symbol
// out of an ELF fixture's text section, for disasm/bench fixtures that
// want to address a single routine within a larger packaged image
// rather than the whole file.
func ExtractSymbolBytes(path, symbolName string) ([]byte, error) {
	ef, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: open %s: %w", path, err)
	}
	defer ef.Close()

	symbols, err := ef.Symbols()
	if err != nil {
		return nil, fmt.Errorf("image: read symbols: %w", err)
	}

	var sym *elf.Symbol
	for i := range symbols {
		if symbols[i].Name == symbolName && elf.ST_TYPE(symbols[i].Info) == elf.STT_FUNC {
			sym = &symbols[i]
			break
		}
	}
	if sym == nil {
		return nil, fmt.Errorf("image: symbol %q not found", symbolName)
	}

	text := ef.Section(".text")
	if text == nil {
		return nil, fmt.Errorf("image: no .text section")
	}
	textData, err := text.Data()
	if err != nil {
		return nil, fmt.Errorf("image: read .text: %w", err)
	}

	off := sym.Value - text.Addr
	if off+sym.Size > uint64(len(textData)) {
		return nil, fmt.Errorf("image: symbol %q bounds out of range", symbolName)
	}
	return textData[off : off+sym.Size], nil
}
