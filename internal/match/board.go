package match

// The shipped rules target one 3x3 layout. Cells are addressed by the string
// ids "1".."9", laid out row-major:
//
//	1 2 3
//	4 5 6
//	7 8 9

var cells = map[string]struct{}{
	"1": {}, "2": {}, "3": {},
	"4": {}, "5": {}, "6": {},
	"7": {}, "8": {}, "9": {},
}

var winLines = [][3]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{"1", "4", "7"},
	{"2", "5", "8"},
	{"3", "6", "9"},
	{"1", "5", "9"},
	{"3", "5", "7"},
}

func validCell(id string) bool {
	_, ok := cells[id]
	return ok
}

// winnerOnBoard reports the mark holding a completed line, if any.
func winnerOnBoard(board map[string]Mark) (Mark, bool) {
	for _, line := range winLines {
		m, ok := board[line[0]]
		if !ok {
			continue
		}
		if board[line[1]] == m && board[line[2]] == m {
			return m, true
		}
	}
	return "", false
}

func boardFull(board map[string]Mark) bool {
	return len(board) == len(cells)
}
