package sudoku_test

import "github.com/oblivexp/volesudoku/sudoku"

// validBoard is a standard, well-known valid Sudoku solution (spec §8
// scenario: "valid board").
var validBoard = sudoku.Board{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// rowDuplicateBoard matches validBoard except row 0's last two cells are
// both 1, breaking the row-permutation property while every column and
// box stays intact elsewhere (spec §8 scenario: "row duplicate").
var rowDuplicateBoard = func() sudoku.Board {
	b := validBoard
	b[0][7] = 1
	b[0][8] = 1
	return b
}()

// boxDuplicateBoard matches validBoard except the top-left box's (0,0)
// cell is overwritten with its neighbor's value, producing a duplicate
// inside that box (and, incidentally, its row) (spec §8 scenario: "box
// duplicate").
var boxDuplicateBoard = func() sudoku.Board {
	b := validBoard
	b[0][0] = b[0][1]
	return b
}()

// cyclicShiftBoard applies the bijection v -> (v % 9) + 1 to every cell
// of validBoard. Relabeling a Latin square's symbols under a permutation
// of {1..9} preserves every row/column/box permutation property, so this
// board must still be valid (spec §8 scenario: "cyclic shift of a valid
// solution").
var cyclicShiftBoard = func() sudoku.Board {
	var b sudoku.Board
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			b[i][j] = (validBoard[i][j] % 9) + 1
		}
	}
	return b
}()

// allOnesBoard is maximally invalid: every row, column and box is the
// constant 1 (spec §8 scenario: "all-ones board").
var allOnesBoard = func() sudoku.Board {
	var b sudoku.Board
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			b[i][j] = 1
		}
	}
	return b
}()
