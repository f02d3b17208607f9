// Completion: 100% - CLI interface complete
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
)

// A tiny compiler for the Wave language, targeting x86_64 Linux. The output
// is a statically-linked executable whose only runtime dependency is the
// kernel's syscall interface.

const versionString = "wavec 1.1.0"

const usageLine = "Usage: wavec <input> -o <output>"

// VerboseMode turns on the stderr hex trace of every emitted byte. Set by
// the -v flag or WAVEC_VERBOSE=1.
var VerboseMode bool

// CompileWave turns Wave source bytes into a complete ELF64 image: function
// pre-scan, code generation, then the ELF wrapper.
func CompileWave(src []byte, baseAddr uint64) ([]byte, error) {
	if len(src) > sourceCapacity {
		return nil, newCompileError(CategoryLimit, "source exceeds 1 MiB")
	}
	syms := NewSymbolTables()
	sc := NewScanner(src)
	if err := Prescan(sc, syms); err != nil {
		return nil, err
	}
	c := NewCompiler(sc, syms)
	code, err := c.Compile()
	if err != nil {
		return nil, err
	}
	return elfImage(code, baseAddr), nil
}

// baseAddress returns the virtual base of the emitted image. WAVEC_BASE_ADDR
// accepts decimal or 0x-prefixed hex; anything unparsable falls back to the
// default.
func baseAddress() uint64 {
	s := env.Str("WAVEC_BASE_ADDR", "")
	if s == "" {
		return defaultBaseAddr
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return defaultBaseAddr
	}
	return v
}

// compileFile compiles input and writes the executable to output, mode 0755.
func compileFile(input, output string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	img, err := CompileWave(src, baseAddress())
	if err != nil {
		return err
	}
	return os.WriteFile(output, img, 0o755)
}

// reportFailure prints the fixed error line. The underlying error is only
// shown in verbose mode; the one-policy model promises nothing more than the
// exit status.
func reportFailure(err error) {
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "wavec: %v\n", err)
	}
	fmt.Fprintln(os.Stderr, "Error: compilation failed")
}

func main() {
	VerboseMode = env.Bool("WAVEC_VERBOSE")

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "run" {
		if err := cmdRun(args[1:]); err != nil {
			reportFailure(err)
			os.Exit(1)
		}
		return
	}

	var input, output string
	watch := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "-v":
			VerboseMode = true
		case "-watch":
			watch = true
		case "-V", "--version":
			fmt.Println(versionString)
			return
		default:
			if input == "" && !strings.HasPrefix(args[i], "-") {
				input = args[i]
			}
		}
	}

	if input == "" || output == "" {
		fmt.Fprintln(os.Stderr, usageLine)
		os.Exit(1)
	}

	if err := compileFile(input, output); err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	if watch {
		if err := watchAndRecompile(input, output); err != nil {
			reportFailure(err)
			os.Exit(1)
		}
	}
}

// watchAndRecompile blocks on inotify and recompiles the source on every
// write. Compile errors are reported but do not end the watch.
func watchAndRecompile(input, output string) error {
	fw, err := NewFileWatcher(func(path string) {
		if err := compileFile(path, output); err != nil {
			reportFailure(err)
			return
		}
		fmt.Fprintf(os.Stderr, "wavec: recompiled %s -> %s\n", path, output)
	})
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.AddFile(input); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wavec: watching %s\n", input)
	return fw.Watch()
}

// cmdRun compiles the input to a scratch path and execs the result in place
// of the compiler process.
func cmdRun(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: wavec run <input> [args...]")
	}
	input := args[0]
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outPath := filepath.Join(os.TempDir(), "wavec-"+base)
	if err := compileFile(input, outPath); err != nil {
		return err
	}
	return execProgram(outPath, args[1:])
}
