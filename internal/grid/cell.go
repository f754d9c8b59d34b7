package grid

import "strconv"

// Cell identifies a grid position by its day (row) and location (column) values.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Key returns the canonical map key for the cell.
func (c Cell) Key() string {
	return strconv.Itoa(c.Row) + "_" + strconv.Itoa(c.Column)
}

func (c Cell) String() string {
	return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Column) + ")"
}
