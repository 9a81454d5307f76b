package puzzle

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/gridpress/pkg/errors"
)

// Parse decodes JSON data and normalizes it. Decoding failures are reported
// as MALFORMED_PUZZLE errors.
func Parse(data []byte) (*Puzzle, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedPuzzle, err, "decode puzzle json")
	}
	return Normalize(raw)
}

// Normalize converts a decoded JSON tree into a [Puzzle].
//
// It fails when the root is not an object, when "puzzle" is missing, empty
// or not rectangular, or when a clue entry cannot be decoded as a
// (number, text) pair.
func Normalize(raw any) (*Puzzle, error) {
	root, ok := asObject(raw)
	if !ok {
		return nil, errors.Malformed("puzzle document must be a JSON object, got %s", kind(raw))
	}

	grid, err := normalizeGrid(root)
	if err != nil {
		return nil, err
	}

	clues, err := normalizeClues(root)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{
		Title:     text(root, "title"),
		Author:    text(root, "author"),
		Copyright: text(root, "copyright"),
		Grid:      grid,
		Solution:  normalizeSolution(root),
		Clues:     clues,
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	return p, nil
}

// =============================================================================
// Grid
// =============================================================================

func normalizeGrid(root *Object) ([][]Cell, error) {
	v, ok := root.Get("puzzle")
	if !ok || v == nil {
		return nil, errors.Malformed("missing \"puzzle\" grid")
	}
	rows, ok := v.([]any)
	if !ok {
		return nil, errors.Malformed("\"puzzle\" must be an array of rows, got %s", kind(v))
	}
	if len(rows) == 0 {
		return nil, errors.Malformed("\"puzzle\" grid is empty")
	}

	grid := make([][]Cell, len(rows))
	width := -1
	for r, rv := range rows {
		row, ok := rv.([]any)
		if !ok {
			return nil, errors.Malformed("puzzle row %d must be an array, got %s", r, kind(rv))
		}
		if width < 0 {
			width = len(row)
		}
		if len(row) != width {
			return nil, errors.Malformed("puzzle row %d has %d cells, want %d", r, len(row), width)
		}
		cells := make([]Cell, len(row))
		for c, cv := range row {
			cells[c] = ResolveCell(cv)
		}
		grid[r] = cells
	}
	if width == 0 {
		return nil, errors.Malformed("puzzle rows are empty")
	}
	return grid, nil
}

// ResolveCell maps one raw grid value to a [Cell] using the resolution
// table in the package documentation.
func ResolveCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Block()
	case string:
		if x == "#" {
			return Block()
		}
		return White(0)
	}

	if obj, ok := asObject(v); ok {
		if cv, ok := obj.Get("cell"); ok {
			return whiteIfPositive(cv)
		}
		if nv, ok := obj.Get("number"); ok {
			return whiteIfPositive(nv)
		}
		return Block()
	}

	if n, ok := asInt(v); ok {
		if n == 0 {
			return Block()
		}
		return White(n)
	}
	return White(0)
}

func whiteIfPositive(v any) Cell {
	if n, ok := asInt(v); ok && n > 0 {
		return White(n)
	}
	return White(0)
}

// =============================================================================
// Solution
// =============================================================================

func normalizeSolution(root *Object) [][]SolutionCell {
	v, ok := root.Get("solution")
	if !ok {
		return nil
	}
	rows, ok := v.([]any)
	if !ok || len(rows) == 0 {
		return nil
	}

	solution := make([][]SolutionCell, len(rows))
	for r, rv := range rows {
		row, ok := rv.([]any)
		if !ok {
			continue
		}
		cells := make([]SolutionCell, len(row))
		for c, cv := range row {
			cells[c] = resolveSolutionCell(cv)
		}
		solution[r] = cells
	}
	return solution
}

func resolveSolutionCell(v any) SolutionCell {
	if obj, ok := asObject(v); ok {
		v, _ = obj.Get("value")
	}
	s, ok := v.(string)
	if !ok || s == "#" || s == ":" {
		return SolutionCell{}
	}
	return SolutionCell{Letter: norm.NFC.String(strings.TrimSpace(s))}
}

// =============================================================================
// Clues
// =============================================================================

func normalizeClues(root *Object) (Clues, error) {
	var clues Clues

	v, ok := root.Get("clues")
	if !ok {
		return clues, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return clues, nil
	}

	for _, m := range obj.Members {
		var dst *[]Clue
		switch strings.ToLower(m.Key) {
		case "across":
			dst = &clues.Across
		case "down":
			dst = &clues.Down
		default:
			continue
		}
		list, err := normalizeClueList(m.Key, m.Value)
		if err != nil {
			return Clues{}, err
		}
		*dst = list
	}
	return clues, nil
}

func normalizeClueList(section string, v any) ([]Clue, error) {
	var entries []any
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		entries = x
	default:
		obj, ok := asObject(v)
		if !ok {
			return nil, errors.Malformed("clues.%s must be a list or mapping, got %s", section, kind(v))
		}
		entries = make([]any, len(obj.Members))
		for i, m := range obj.Members {
			entries[i] = m.Value
		}
	}

	clues := make([]Clue, 0, len(entries))
	for i, e := range entries {
		c, ok, err := resolveClue(e)
		if err != nil {
			return nil, errors.Malformed("clues.%s[%d]: %s", section, i, err.Error())
		}
		if ok {
			clues = append(clues, c)
		}
	}
	return clues, nil
}

type clueError string

func (e clueError) Error() string { return string(e) }

// resolveClue decodes one clue entry. ok is false for entries that lack a
// number or text and should be dropped.
func resolveClue(e any) (c Clue, ok bool, err error) {
	var numV, textV any

	switch x := e.(type) {
	case nil, string:
		return Clue{}, false, nil
	case []any:
		if len(x) < 2 {
			return Clue{}, false, nil
		}
		numV, textV = x[0], x[1]
	default:
		obj, isObj := asObject(e)
		if !isObj {
			return Clue{}, false, clueError("entry must be a [number, text] pair or an object, got " + kind(e))
		}
		numV, _ = obj.Get("number")
		if tv, has := obj.Get("clue"); has {
			textV = tv
		} else {
			textV, _ = obj.Get("text")
		}
	}

	if numV == nil || textV == nil {
		return Clue{}, false, nil
	}

	n, err := clueNumber(numV)
	if err != nil {
		return Clue{}, false, err
	}
	if n == 0 {
		return Clue{}, false, nil
	}

	t, isStr := textV.(string)
	if !isStr {
		return Clue{}, false, clueError("clue text must be a string, got " + kind(textV))
	}
	return Clue{Number: n, Text: norm.NFC.String(t)}, true, nil
}

// clueNumber decodes a clue number. Zero and the empty string mean absent.
func clueNumber(v any) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, clueError("clue number " + strconv.Quote(s) + " is not a positive integer")
		}
		return n, nil
	}
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, clueError("clue number must be a positive integer, got " + kind(v))
	}
	return n, nil
}

// =============================================================================
// Helpers
// =============================================================================

func text(obj *Object, key string) string {
	v, _ := obj.Get(key)
	s, _ := v.(string)
	return norm.NFC.String(strings.TrimSpace(s))
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	}
	if _, ok := asObject(v); ok {
		return "object"
	}
	return "number"
}
