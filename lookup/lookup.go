/*
Package lookup reads and edits the icon asset lookup table.

The table is a Lua source file carrying two associative blocks,
customNormalIcons and customShinyIcons, of entries shaped like

	[1186] = 'rbxassetid://12345678', --Celebi

Edits are textual: a new entry is inserted just before the closing
brace of its block in exactly the formatting above, so the file
round-trips byte for byte apart from the inserted line.
*/
package lookup

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Block names one of the two lookup blocks in the table.
type Block string

const (
	Normal Block = "customNormalIcons"
	Shiny  Block = "customShinyIcons"
)

// AssetPrefix is the scheme every stored reference carries.
const AssetPrefix = "rbxassetid://"

var (
	// ErrNoBlock is returned when the table file does not contain
	// the requested block.
	ErrNoBlock = errors.New("lookup: block not found")

	entryPattern = regexp.MustCompile(`\[(\d+)\]\s*=\s*['"]([^'"]+)['"][^-\n]*(?:--(.*))?`)
)

func blockPattern(b Block) *regexp.Regexp {
	return regexp.MustCompile(`(?s)local ` + string(b) + ` = \{(.*?)\n(\s*)\}`)
}

// Entry is one icon slot: its numeric key, the bare asset reference
// (without the rbxassetid:// prefix) and the trailing comment,
// conventionally the icon name.
type Entry struct {
	Key     int
	AssetID string
	Comment string
}

// Table holds the table file text and edits it in place.
type Table struct {
	src []byte
}

// Parse wraps the table file contents. It fails when the normal block
// is missing, which is the sign of the wrong file.
func Parse(b []byte) (*Table, error) {
	if !blockPattern(Normal).Match(b) {
		return nil, ErrNoBlock
	}
	return &Table{src: append([]byte(nil), b...)}, nil
}

// ParseFile reads and parses the table file at path.
func ParseFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Bytes returns the current table text.
func (t *Table) Bytes() []byte {
	return append([]byte(nil), t.src...)
}

// WriteFile writes the current table text to path.
func (t *Table) WriteFile(path string) error {
	return os.WriteFile(path, t.src, 0644)
}

// Entries returns the parsed entries of a block sorted by key.
func (t *Table) Entries(block Block) []Entry {
	m := blockPattern(block).FindSubmatch(t.src)
	if m == nil {
		return nil
	}

	var entries []Entry
	for _, e := range entryPattern.FindAllSubmatch(m[1], -1) {
		key, err := strconv.Atoi(string(e[1]))
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Key:     key,
			AssetID: strings.TrimPrefix(string(e[2]), AssetPrefix),
			Comment: strings.TrimSpace(string(e[3])),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	return entries
}

// Normal returns the parsed entries of the normal block.
func (t *Table) Normal() []Entry {
	return t.Entries(Normal)
}

// Shiny returns the parsed entries of the shiny block.
func (t *Table) Shiny() []Entry {
	return t.Entries(Shiny)
}

// Has reports whether a block already holds the given key.
func (t *Table) Has(block Block, key int) bool {
	for _, e := range t.Entries(block) {
		if e.Key == key {
			return true
		}
	}
	return false
}

func formatEntry(e Entry) string {
	return fmt.Sprintf("\t\t\t[%d] = '%s%s', --%s", e.Key, AssetPrefix, e.AssetID, e.Comment)
}

// Insert adds an entry to a block, just before its closing brace. An
// existing entry with the same key is replaced in place instead.
func (t *Table) Insert(block Block, e Entry) error {
	p := blockPattern(block)
	loc := p.FindSubmatchIndex(t.src)
	if loc == nil {
		return fmt.Errorf("%w: %s", ErrNoBlock, block)
	}

	if t.Has(block, e.Key) {
		return t.replace(block, e)
	}

	// loc[2]:loc[3] is the block body; insert after it, before the
	// closing brace line.
	var out []byte
	out = append(out, t.src[:loc[3]]...)
	out = append(out, '\n')
	out = append(out, formatEntry(e)...)
	out = append(out, t.src[loc[3]:]...)
	t.src = out

	return nil
}

func (t *Table) replace(block Block, e Entry) error {
	p := blockPattern(block)
	loc := p.FindSubmatchIndex(t.src)
	if loc == nil {
		return fmt.Errorf("%w: %s", ErrNoBlock, block)
	}

	body := t.src[loc[2]:loc[3]]
	linePattern := regexp.MustCompile(`(?m)^.*\[` + strconv.Itoa(e.Key) + `\]\s*=.*$`)
	newBody := linePattern.ReplaceAll(body, []byte(formatEntry(e)))

	var out []byte
	out = append(out, t.src[:loc[2]]...)
	out = append(out, newBody...)
	out = append(out, t.src[loc[3]:]...)
	t.src = out

	return nil
}

// NextSlot returns the first key >= preferred that is unused in the
// normal block.
func (t *Table) NextSlot(preferred int) int {
	used := make(map[int]struct{})
	for _, e := range t.Entries(Normal) {
		used[e.Key] = struct{}{}
	}

	slot := preferred
	for {
		if _, ok := used[slot]; !ok {
			return slot
		}
		slot++
	}
}

// Gaps returns the unused key ranges between the lowest and highest
// normal keys, inclusive bounds per range.
func (t *Table) Gaps() [][2]int {
	entries := t.Entries(Normal)

	var gaps [][2]int
	for i := 0; i+1 < len(entries); i++ {
		if entries[i+1].Key-entries[i].Key > 1 {
			gaps = append(gaps, [2]int{entries[i].Key + 1, entries[i+1].Key - 1})
		}
	}
	return gaps
}
