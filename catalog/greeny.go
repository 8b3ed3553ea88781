package catalog

// SpecialApple is the collectible cut from the Greeny sheet.
const SpecialApple = "apple"

// Greeny returns the catalog of the Greeny snake sprite sheet: four heads,
// two straight body pieces, four body turns, four tails and the apple on a
// 5x4 grid.
//
// Turn descriptions name both directions a turn piece is traversed in.
func Greeny() *Catalog {
	return New(5, 4, SpecialApple,
		Entry{Coord{0, 0}, "body_turn_left_down", "Body turn: left→down or up→right"},
		Entry{Coord{0, 1}, "body_horizontal", "Body horizontal: left↔right"},
		Entry{Coord{0, 2}, "body_turn_up_left", "Body turn: up→left or right→down"},
		Entry{Coord{0, 3}, "head_up", "Head facing up"},
		Entry{Coord{0, 4}, "head_right", "Head facing right"},

		Entry{Coord{1, 0}, "body_turn_down_right", "Body turn: down→right or left→up"},
		Entry{Coord: Coord{1, 1}},
		Entry{Coord{1, 2}, "body_vertical", "Body vertical: up↕down"},
		Entry{Coord{1, 3}, "head_left", "Head facing left"},
		Entry{Coord{1, 4}, "head_down", "Head facing down"},

		Entry{Coord: Coord{2, 0}},
		Entry{Coord: Coord{2, 1}},
		Entry{Coord{2, 2}, "body_turn_right_up", "Body turn: right→up or down→left"},
		Entry{Coord{2, 3}, "tail_up", "Tail facing up"},
		Entry{Coord{2, 4}, "tail_right", "Tail facing right"},

		Entry{Coord{3, 0}, SpecialApple, "Apple"},
		Entry{Coord: Coord{3, 1}},
		Entry{Coord: Coord{3, 2}},
		Entry{Coord{3, 3}, "tail_left", "Tail facing left"},
		Entry{Coord{3, 4}, "tail_down", "Tail facing down"},
	)
}
