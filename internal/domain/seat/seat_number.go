package seat

import (
	"sort"
	"strconv"
)

// ParseSeatNumber は座席番号を行アルファベットと番号に分解する
// 座席番号は "A1" のように行アルファベット1文字 + 正の整数で構成される
func ParseSeatNumber(seatNumber string) (row string, num int, err error) {
	if len(seatNumber) < 2 {
		return "", 0, ErrInvalidSeatNumber
	}
	r := seatNumber[0]
	if r < 'A' || r > 'Z' {
		return "", 0, ErrInvalidSeatNumber
	}
	n, convErr := strconv.Atoi(seatNumber[1:])
	if convErr != nil || n <= 0 {
		return "", 0, ErrInvalidSeatNumber
	}
	return string(r), n, nil
}

// Less は座席番号の順序を比較する
// 行アルファベット昇順、同一行内では番号の数値昇順（A1, A2, …, A10, B1）
// 単純な文字列比較だと A10 が A2 の前に来てしまうため数値で比較する
func Less(a, b string) bool {
	rowA, numA, errA := ParseSeatNumber(a)
	rowB, numB, errB := ParseSeatNumber(b)
	if errA != nil || errB != nil {
		return a < b
	}
	if rowA != rowB {
		return rowA < rowB
	}
	return numA < numB
}

// SortBySeatNumber は座席一覧を座席番号順に並べ替える
func SortBySeatNumber(seats []*Seat) {
	sort.Slice(seats, func(i, j int) bool {
		return Less(seats[i].SeatNumber, seats[j].SeatNumber)
	})
}
