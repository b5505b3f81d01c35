package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"milsim.dev/internal/sim/force"
)

func main() {
	var (
		dataDir = flag.String("data", "./data", "runtime data directory")
		scope   = flag.String("scope", "", "filter by scope (registry/soldier/team/mission)")
		id      = flag.String("id", "", "filter by entity id (e.g. S1, T2, M1)")
		grep    = flag.String("grep", "", "filter lines containing this substring")
	)
	flag.Parse()

	dir := filepath.Join(*dataDir, "journal")
	files, err := listJournalFiles(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list journal:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no journal files found in", dir)
		os.Exit(1)
	}

	var printed int
	for _, path := range files {
		n, err := dumpFile(path, *scope, *id, *grep)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		printed += n
	}
	fmt.Fprintf(os.Stderr, "%d entries from %d files\n", printed, len(files))
}

func listJournalFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "journal-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

func dumpFile(path, scope, id, grep string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var printed int
	for sc.Scan() {
		var entry force.JournalEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return printed, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if scope != "" && entry.Scope != scope {
			continue
		}
		if id != "" && entry.ID != id {
			continue
		}
		if grep != "" && !strings.Contains(entry.Line, grep) {
			continue
		}
		fmt.Printf("%-8s %-4s %s\n", entry.Scope, entry.ID, entry.Line)
		printed++
	}
	return printed, sc.Err()
}
