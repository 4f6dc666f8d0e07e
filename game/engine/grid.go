package engine

import "fmt"

// createGrid builds rows*cols empty cells in row-major order and seeds the
// starting generator at the center. Cell ids are "{row}-{col}" and are stable
// for the whole session.
func (e *Engine) createGrid(rows, cols int) []*Cell {
	grid := make([]*Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			grid = append(grid, &Cell{
				ID:  fmt.Sprintf("%d-%d", r, c),
				Row: r,
				Col: c,
			})
		}
	}

	center := (rows/2)*cols + cols/2
	grid[center].Item = e.newItem(e.catalog.StartGenerator, 1)

	return grid
}

// FindCellByID scans for a cell. The grid is small; no indexing needed.
func (e *Engine) FindCellByID(id string) *Cell {
	for _, c := range e.state.Grid {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindCellContaining returns the cell holding the item, or nil.
func (e *Engine) FindCellContaining(itemID string) *Cell {
	for _, c := range e.state.Grid {
		if c.Item != nil && c.Item.ID == itemID {
			return c
		}
	}
	return nil
}

// emptyCells returns cells without an item, in grid scan order. Cells that
// are the destination of a pending spawn are excluded when skipClaimed is
// set.
func (e *Engine) emptyCells(skipClaimed bool) []*Cell {
	var claimed map[string]bool
	if skipClaimed {
		claimed = make(map[string]bool, len(e.state.SpawnAnimations))
		for _, a := range e.state.SpawnAnimations {
			claimed[a.ToCellID] = true
		}
	}

	var empty []*Cell
	for _, c := range e.state.Grid {
		if c.Item != nil {
			continue
		}
		if skipClaimed && claimed[c.ID] {
			continue
		}
		empty = append(empty, c)
	}
	return empty
}

// manhattan is the grid walking distance between two cells.
func manhattan(a, b *Cell) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// squaredDistance is used for merge-all nearest-neighbor pairing.
func squaredDistance(a, b *Cell) int {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	return dr*dr + dc*dc
}

// DeleteItem clears the cell holding the item and drops a matching
// selection. Unknown ids are a silent no-op.
func (e *Engine) DeleteItem(itemID string) {
	cell := e.FindCellContaining(itemID)
	if cell == nil {
		return
	}
	cell.Item = nil
	if e.state.SelectedItemID == itemID {
		e.state.SelectedItemID = ""
	}
}
