// scan-artifacts: walks a compiler output directory (foundry out/ or hardhat
// artifacts/), runs the event generator over every ABI in parallel and prints
// a summary table. With -write, each contract's declarations are written next
// to its artifact as <Contract>.events.sol.
//
// Run from the module root:
//
//	go run ./scripts/scan-artifacts ./out
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/ghostlogs/ghost/internal/abigen"
	"github.com/ghostlogs/ghost/internal/contract"
)

// ── types ─────────────────────────────────────────────────────────────────────

type result struct {
	path    string
	name    string
	events  int
	structs int
	err     string
}

// ── main ──────────────────────────────────────────────────────────────────────

func main() {
	write := flag.Bool("write", false, "write <Contract>.events.sol next to each artifact")
	workers := flag.Int("workers", 8, "parallel workers")
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	paths, err := findArtifacts(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
		sem     = make(chan struct{}, max(*workers, 1))
	)

	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r := scan(p, *write)

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	printTable(results)
}

func findArtifacts(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip build-info and debug dirs, they hold no ABIs.
			if d.Name() == "build-info" || strings.HasSuffix(d.Name(), ".dbg") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".dbg.json") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func scan(path string, write bool) result {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	r := result{path: path, name: name}

	abi, err := contract.LoadFromArtifact(path)
	if err != nil {
		r.err = shortErr(err)
		return r
	}
	res := abigen.Generate(contract.Events(abi))
	r.events = len(res.Events)
	r.structs = len(res.Structs)

	if write && r.events > 0 {
		out := filepath.Join(filepath.Dir(path), name+".events.sol")
		if err := os.WriteFile(out, render(res), 0o644); err != nil {
			r.err = shortErr(err)
		}
	}
	return r
}

func render(res abigen.Result) []byte {
	var b bytes.Buffer
	for _, s := range res.Structs {
		fmt.Fprintln(&b, s)
	}
	fmt.Fprintln(&b, "events {")
	for _, e := range res.Events {
		fmt.Fprintf(&b, "\t%s\n", e)
	}
	fmt.Fprintln(&b, "}")
	return b.Bytes()
}

// ── output ────────────────────────────────────────────────────────────────────

func printTable(results []result) {
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "CONTRACT\tEVENTS\tSTRUCTS\tPATH\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 16)+"\t"+
		strings.Repeat("-", 6)+"\t"+
		strings.Repeat("-", 7)+"\t"+
		strings.Repeat("-", 24)+"\t"+
		strings.Repeat("-", 12))

	var events, structs int
	for _, r := range results {
		events += r.events
		structs += r.structs
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", r.name, r.events, r.structs, r.path, r.err)
	}
	fmt.Fprintf(w, "\t\t\t\t\n%d artifacts\t%d\t%d\t\t\n", len(results), events, structs)
	w.Flush()
}

// ── helpers ───────────────────────────────────────────────────────────────────

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 40 {
		return s[:40] + "…"
	}
	return s
}
