package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ianlancetaylor/demangle"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
	"github.com/lockbox/sleigh-go/pkg/sleigh/funcdump"
	"github.com/lockbox/sleigh-go/pkg/sleigh/image"
)

var liftCmd = &cobra.Command{
	Use:   "lift",
	Short: "Decode machine code to assembly and p-code",
	Long: `lift loads program bytes from one of three sources, binds a processor
spec, and prints each decoded instruction followed by its p-code
semantics. Decoding walks forward from the image base (or --at) until
the bytes stop decoding or --count instructions are out.`,
	Example: `
# Lift raw bytes
sleigh-go lift --spec specs/x86-64.sla --bytes f30f1efa5548 --base 0x401000

# Lift one function from an analyzer dump
sleigh-go lift --lang x86:LE:64:default --dump funcs.json --fn _start

# Lift four instructions of a binary's code sections
sleigh-go lift --spec specs/x86-64.sla --file ./a.out --at 0x401020 --count 4
  `,
	Args: cobra.NoArgs,
	RunE: runLift,
}

func init() {
	addSessionFlags(liftCmd)
	liftCmd.Flags().String("bytes", "", "Hex-encoded program bytes")
	liftCmd.Flags().Uint64("base", 0, "Load address for --bytes")
	liftCmd.Flags().String("dump", "", "Function dump file (JSON)")
	liftCmd.Flags().String("fn", "", "Single function name from --dump")
	liftCmd.Flags().String("file", "", "Object file; loads its code sections")
	liftCmd.Flags().Uint64("at", 0, "Decode from this address instead of the image base")
	liftCmd.Flags().Int("count", 0, "Stop after this many instructions (0 = until decoding stops)")
	liftCmd.Flags().Bool("no-pcode", false, "Print assembly only")
	liftCmd.Flags().Bool("demangle", false, "Demangle function names from --dump")
	liftCmd.MarkFlagsMutuallyExclusive("bytes", "dump", "file")
	rootCmd.AddCommand(liftCmd)
}

func runLift(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	bytesHex, _ := flags.GetString("bytes")
	dumpPath, _ := flags.GetString("dump")
	filePath, _ := flags.GetString("file")
	if bytesHex == "" && dumpPath == "" && filePath == "" {
		return fmt.Errorf("one of --bytes, --dump or --file is required")
	}

	p := newPrinter(cmd)
	noPcode, _ := flags.GetBool("no-pcode")
	count, _ := flags.GetInt("count")

	tr, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer tr.Close()

	switch {
	case dumpPath != "":
		return liftDump(cmd, p, tr, dumpPath, !noPcode, count)
	case bytesHex != "":
		data, err := hex.DecodeString(strings.TrimPrefix(bytesHex, "0x"))
		if err != nil {
			return fmt.Errorf("--bytes: %v", err)
		}
		base, _ := flags.GetUint64("base")
		if err := tr.LoadRegion(base, data); err != nil {
			return err
		}
	default:
		f, err := openObject(filePath)
		if err != nil {
			return err
		}
		regions := f.CodeRegions()
		if len(regions) == 0 {
			return fmt.Errorf("%s: no loadable code sections", filePath)
		}
		if err := tr.LoadRegions(regions); err != nil {
			return err
		}
	}

	if flags.Changed("at") {
		at, _ := flags.GetUint64("at")
		return liftFrom(p, tr, at, 0, count, !noPcode)
	}
	return liftWalk(p, tr, count, !noPcode)
}

func liftDump(cmd *cobra.Command, p *printer, tr *sleigh.Translator, path string, pcode bool, count int) error {
	flags := cmd.Flags()
	funcs, err := funcdump.Load(path)
	if err != nil {
		return err
	}
	if len(funcs) == 0 {
		return fmt.Errorf("%s: empty dump", path)
	}
	dem, _ := flags.GetBool("demangle")

	if name, _ := flags.GetString("fn"); name != "" {
		fn, ok := funcs.Find(name)
		if !ok {
			return fmt.Errorf("function %q not in %s", name, path)
		}
		if err := tr.LoadRegion(fn.Base, fn.Data); err != nil {
			return err
		}
		start := fn.Base
		if flags.Changed("at") {
			start, _ = flags.GetUint64("at")
		}
		p.printf("%s\n", p.styled(headerStyle, displayName(fn.Name, dem)))
		return liftFrom(p, tr, start, fn.Base+uint64(len(fn.Data)), count, pcode)
	}

	regions := make([]image.Region, len(funcs))
	for i := range funcs {
		regions[i] = funcs[i].Region()
	}
	if err := tr.LoadRegions(regions); err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(funcs)), "lifting")
	for i := range funcs {
		fn := &funcs[i]
		p.printf("\n%s\n", p.styled(headerStyle, displayName(fn.Name, dem)))
		if err := liftFrom(p, tr, fn.Base, fn.Base+uint64(len(fn.Data)), count, pcode); err != nil {
			return err
		}
		bar.Add(1)
	}
	return bar.Finish()
}

// liftFrom decodes sequentially from start, advancing by instruction
// length. end bounds the walk when nonzero; count when positive.
func liftFrom(p *printer, tr *sleigh.Translator, start, end uint64, count int, pcode bool) error {
	addr := start
	printed := 0
	for end == 0 || addr < end {
		if count > 0 && printed >= count {
			break
		}
		insn, err := tr.LiftAt(addr)
		if err != nil {
			return noteDecodeStop(p, addr, err)
		}
		p.insn(insn, pcode)
		addr += insn.Length
		printed++
	}
	return nil
}

// liftWalk decodes with the session cursor from the image base.
func liftWalk(p *printer, tr *sleigh.Translator, count int, pcode bool) error {
	printed := 0
	for count == 0 || printed < count {
		insn, err := tr.Next()
		if err != nil {
			if printed == 0 && errors.Is(err, sleigh.ErrBadData) {
				p.printf("%s\n", p.styled(noteStyle, "(no instructions decoded)"))
				return nil
			}
			return noteDecodeStop(p, 0, err)
		}
		p.insn(insn, pcode)
		printed++
	}
	return nil
}

// noteDecodeStop reports the errors that end a walk without failing
// the command: running off the decodable bytes is an expected stop.
func noteDecodeStop(p *printer, addr uint64, err error) error {
	var where string
	if addr != 0 {
		where = fmt.Sprintf("%#010x  ", addr)
	}
	switch {
	case errors.Is(err, sleigh.ErrBadData):
		p.printf("%s%s\n", p.styled(addrStyle, where), p.styled(noteStyle, "(bytes do not decode)"))
		return nil
	case errors.Is(err, sleigh.ErrUnimplemented):
		p.printf("%s%s\n", p.styled(addrStyle, where), p.styled(noteStyle, "(decoded, semantics unimplemented)"))
		return nil
	}
	return err
}

func (p *printer) insn(insn *sleigh.Instruction, pcode bool) {
	p.printf("%s  %s", p.styled(addrStyle, fmt.Sprintf("%#010x", insn.Address)),
		p.styled(mnemStyle, insn.Mnemonic))
	if insn.Body != "" {
		p.printf(" %s", p.styled(operandStyle, insn.Body))
	}
	p.printf("\n")
	if !pcode {
		return
	}
	for i := range insn.Ops {
		p.printf("    %s\n", p.styled(pcodeStyle, insn.Ops[i].String()))
	}
}

// displayName demangles for display only; lookups always use the raw
// name from the dump.
func displayName(name string, dem bool) string {
	if !dem {
		return name
	}
	return demangle.Filter(name)
}
