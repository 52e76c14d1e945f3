// refobj CLI - boots the object model from refobj.toml and reports on it
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/refobj/manifest"
	"github.com/chazu/refobj/vm"
)

var log = commonlog.GetLogger("refobj")

func main() {
	dir := flag.String("C", ".", "Directory to search upward for "+manifest.FileName)
	verbose := flag.Bool("v", false, "Verbose output")
	checkOnly := flag.Bool("check", false, "Validate the configuration and boot, then exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: refobj [options]\n\n")
		fmt.Fprintf(os.Stderr, "Boots the object model from %s and prints its constants and classes.\n\n", manifest.FileName)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  refobj                 # Use ./%s or the compiled-in defaults\n", manifest.FileName)
		fmt.Fprintf(os.Stderr, "  refobj -C ./project -v # Search from ./project, log verbosely\n")
		fmt.Fprintf(os.Stderr, "  refobj -check          # Exit non-zero if the configuration is inconsistent\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}

	verbosity := m.Logging.Verbosity
	if *verbose && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, m.LogPath())

	if err := m.ApplyLocking(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt, err := vm.Boot(m.BootOptions())
	if err != nil {
		log.Critical("boot failed", "error", err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *checkOnly {
		fmt.Println("ok")
		return
	}
	printRuntime(rt)
}

func printRuntime(rt *vm.Runtime) {
	fmt.Printf("Constants (%d):\n", rt.Constants.Len())
	for _, oid := range rt.Constants.Oids() {
		fmt.Printf("  %s\n", rt.Constants.Get(oid))
	}

	classes := rt.Space.Classes()
	fmt.Printf("Classes (%d):\n", len(classes))
	for _, c := range classes {
		attrs := vm.ClassAttrSet(c)
		fmt.Printf("  %s  %d attributes %s\n", c, attrs.Cardinal(), attrs)
	}
	fmt.Printf("Max instance size: %d slots\n", rt.Builder.MaxSize())
}
