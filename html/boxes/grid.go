package boxes

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
)

// GridCell is one slot of a section grid. Cells overlapping because of
// spans are all stored, the last one being the primary cell.
type GridCell struct {
	Cells []CellID
	// InColSpan is true for the slots covered by a cell
	// starting in a previous effective column.
	InColSpan bool
}

func (gc GridCell) hasCells() bool { return len(gc.Cells) != 0 }

// PrimaryCell returns the cell painted on top of the slot, or [NoCell].
func (gc GridCell) PrimaryCell() CellID {
	if len(gc.Cells) == 0 {
		return NoCell
	}
	return gc.Cells[len(gc.Cells)-1]
}

type gridRow struct {
	cells []GridCell
	row   RowID
	// logicalHeight is the height from the row style, possibly
	// raised by the style of its (non spanning) cells
	logicalHeight pr.Dimension
}

// Grid gives access to the up to date grid of a table.
// Each method rebuilds the stale parts of the table if needed, so that
// a Grid kept across mutations is never out of date.
type Grid struct {
	t *Table
}

// Recalc rebuilds the stale parts of the table grid and returns
// a view over it.
func (t *Table) Recalc() Grid {
	t.recalcSectionsIfNeeded()
	return Grid{t}
}

// Table returns the underlying table.
func (g Grid) Table() *Table { return g.t }

func (g Grid) clean() *Table {
	g.t.recalcSectionsIfNeeded()
	return g.t
}

func (t *Table) recalcSectionsIfNeeded() {
	if t.needsSectionRecalc {
		t.recalcSections()
	}
}

// recalcSections rebuilds the grid of every section, and the effective columns.
func (t *Table) recalcSections() {
	t.head, t.foot, t.firstBody = NoSection, NoSection, NoSection
	t.effectiveColumns = t.effectiveColumns[:0]
	t.noCellColspanAtLeast = 0
	for _, id := range t.sectionOrder {
		t.Section(id).needsCellRecalc = true
	}

	for _, id := range t.sectionOrder {
		section := t.Section(id)
		switch section.SectionKind() {
		case Header:
			if t.head == NoSection {
				t.head = id
			} else if t.firstBody == NoSection {
				t.firstBody = id
			}
		case Footer:
			if t.foot == NoSection {
				t.foot = id
			} else if t.firstBody == NoSection {
				t.firstBody = id
			}
		default:
			if t.firstBody == NoSection {
				t.firstBody = id
			}
		}
		t.recalcCells(section)
	}

	// repair column count
	maxCols := 0
	for _, id := range t.sectionOrder {
		if n := t.Section(id).numEffectiveColumns(); n > maxCols {
			maxCols = n
		}
	}
	t.resizeEffectiveColumns(maxCols)
	t.needsSectionRecalc = false
	t.InvalidateCollapsedBorders()
	t.needsLayout = true

	logger.ProgressLogger.WithField("sections", len(t.sectionOrder)).
		WithField("columns", len(t.effectiveColumns)).Debug("table grid rebuilt")
}

func (s *Section) ensureRows(n int) {
	for len(s.grid) < n {
		s.grid = append(s.grid, gridRow{row: NoRow})
	}
}

func (s *Section) ensureCols(row, n int) {
	for len(s.grid[row].cells) < n {
		s.grid[row].cells = append(s.grid[row].cells, GridCell{})
	}
}

func (s *Section) numCols(row int) int { return len(s.grid[row].cells) }

func (s *Section) appendEffectiveColumn(pos int) {
	for row := range s.grid {
		s.ensureCols(row, pos+1)
	}
}

// splitEffectiveColumn duplicates the slot at [pos] in every row.
func (s *Section) splitEffectiveColumn(pos int) {
	if s.cCol > pos {
		s.cCol++
	}
	for row := range s.grid {
		cells := s.grid[row].cells
		if pos >= len(cells) {
			continue
		}
		slot := cells[pos]
		copied := GridCell{
			Cells:     append([]CellID(nil), slot.Cells...),
			InColSpan: slot.hasCells() || slot.InColSpan,
		}
		s.grid[row].cells = insertAt(cells, pos+1, copied)
	}
}

// numEffectiveColumns returns the index of the last slot used, plus one.
func (s *Section) numEffectiveColumns() int {
	result := 0
	for r := range s.grid {
		for c := result; c < s.numCols(r); c++ {
			if gc := s.grid[r].cells[c]; gc.hasCells() || gc.InColSpan {
				result = c + 1
			}
		}
	}
	return result
}

// recalcCells rebuilds the grid of the section, walking the rows and cells
// in DOM order.
func (t *Table) recalcCells(s *Section) {
	// reset here so that addCell sees the effective column changes
	s.needsCellRecalc = false
	s.cCol = 0
	s.grid = s.grid[:0]

	resizedGrid := false
	for insertionRow, rowID := range s.rows {
		row := t.Row(rowID)
		s.cCol = 0
		s.ensureRows(insertionRow + 1)
		s.grid[insertionRow].row = rowID
		row.index = insertionRow
		s.grid[insertionRow].logicalHeight = row.style.Height

		for _, cellID := range row.cells {
			cell := t.Cell(cellID)
			// For rowspan, "the value zero means that the cell is to span
			// all the remaining rows in the row group."
			if cell.rowspan == 0 && !resizedGrid {
				s.ensureRows(len(s.rows))
				resizedGrid = true
			}
			t.addCell(s, cellID, insertionRow)
		}
	}
}

// updateLogicalHeightForCell raises the row height with the
// height of a non spanning cell : percentages win over fixed values
// and larger values win.
func updateLogicalHeightForCell(row *gridRow, cell *Cell) {
	if cell.resolvedRowSpan != 1 {
		return
	}
	height := cell.style.Height
	if !height.IsPositive() {
		return
	}
	current := row.logicalHeight
	switch height.Unit {
	case pr.Perc:
		if !current.IsPercent() || current.Value < height.Value {
			row.logicalHeight = height
		}
	case pr.Px:
		if current.IsAuto() || (current.IsFixed() && current.Value < height.Value) {
			row.logicalHeight = height
		}
	}
}

// addCell places the cell in the first free slot of [insertionRow],
// creating or splitting effective columns as needed.
func (t *Table) addCell(s *Section, cellID CellID, insertionRow int) {
	cell := t.Cell(cellID)

	remainingRows := len(s.rows) - insertionRow
	rowspan := cell.rowspan
	if rowspan == 0 || rowspan > remainingRows {
		rowspan = remainingRows
	}
	cell.resolvedRowSpan = rowspan
	cspan := cell.colspan

	for s.cCol < s.numCols(insertionRow) {
		gc := s.grid[insertionRow].cells[s.cCol]
		if !gc.hasCells() && !gc.InColSpan {
			break
		}
		s.cCol++
	}

	updateLogicalHeightForCell(&s.grid[insertionRow], cell)

	s.ensureRows(insertionRow + rowspan)

	col := s.cCol
	inColSpan := false
	colSize := len(t.effectiveColumns)
	for cspan > 0 {
		var currentSpan int
		if s.cCol >= colSize {
			t.appendEffectiveColumn(cspan)
			currentSpan = cspan
		} else {
			currentSpan = t.effectiveColumns[s.cCol].Span
			if cspan < currentSpan {
				t.splitEffectiveColumn(s.cCol, cspan)
				currentSpan = cspan
			}
		}
		for r := 0; r < rowspan; r++ {
			s.ensureCols(insertionRow+r, s.cCol+1)
			gc := &s.grid[insertionRow+r].cells[s.cCol]
			gc.Cells = append(gc.Cells, cellID)
			if inColSpan {
				gc.InColSpan = true
			}
		}
		s.cCol++
		cspan -= currentSpan
		inColSpan = true
	}
	cell.absoluteColumn = t.effectiveColumnToAbsoluteColumn(col)
}
