// Package puzzle holds the canonical in-memory form of a crossword and the
// normalizer that produces it from IPUZ-style JSON.
//
// # Overview
//
// Real puzzle files encode the same information in many ways: a block may be
// "#", 0 or null; a numbered square may be a bare number or an object with a
// "cell" or "number" field; clue lists may be [number, text] pairs, objects,
// or a mapping of objects. [Normalize] resolves every variant exactly once,
// at the boundary, so the renderer only ever sees [Cell] and [Clue] values.
//
// # Basic Usage
//
//	p, err := puzzle.Parse(data)
//	if errors.Is(err, errors.ErrCodeMalformedPuzzle) {
//	    // the file cannot be rendered
//	}
//	fmt.Println(p.Title, p.Rows(), p.Cols(), len(p.Clues.Across))
//
// # Cell Resolution
//
//	raw value                                  resolved
//	"#", 0, null                               Black
//	":"                                        White (no number)
//	object with cell > 0                       White(cell)
//	object with number > 0 and no cell key     White(number)
//	plain number n > 0                         White(n)
//	object with neither cell nor number key    Black
//	anything else                              White (no number)
//
// # Key Order
//
// Clue mappings are read in the order their keys appear in the file. The
// standard library decodes objects into unordered maps, so [Parse] decodes
// through [Decode], which returns [*Object] values that keep insertion order.
// [Normalize] also accepts plain map[string]any trees; their keys are visited
// in natural order ("2" before "10") so the result stays deterministic.
//
// # Leniency
//
// The normalizer is lenient: clue entries missing a number or text are
// dropped, unknown keys are ignored, and clue numbers are neither sorted nor
// checked against the grid. It fails only when the grid is missing, empty or
// ragged, or when a clue entry carries a number or text that cannot be
// decoded.
package puzzle
