package puzzle_test

import (
	"fmt"

	"github.com/matzehuels/gridpress/pkg/puzzle"
)

func ExampleParse() {
	data := []byte(`{
		"title": "Tiny",
		"puzzle": [[1, 2], [3, "#"]],
		"clues": {
			"Across": [[1, "Feline"], [3, "Article"]],
			"Down": {"1": {"number": 1, "clue": "Automobile"}}
		}
	}`)

	p, err := puzzle.Parse(data)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(p.Title, p.Rows(), "x", p.Cols())
	fmt.Println(p.Grid[1][1].Black, p.Grid[0][1].Number)
	for _, c := range p.Clues.Across {
		fmt.Println(c.Number, c.Text)
	}
	fmt.Println(len(p.Clues.Down))
	// Output:
	// Tiny 2 x 2
	// true 2
	// 1 Feline
	// 3 Article
	// 1
}
