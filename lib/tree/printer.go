package tree

import (
	"bufio"
	"io"
	"strings"
)

const emptyTreeHint = "Empty tree!"

// Print renders the tree shape as text. The verbose mode dumps
// the info of every node, indented by depth, before the shape.
//
//	   6
//	  / \
//	 5   8
func (t *bst[K]) Print(w io.Writer, verbose bool) error {
	bw := bufio.NewWriter(w)
	if t.root == nilID {
		_, _ = bw.WriteString(emptyTreeHint + "\n")
		return bw.Flush()
	}
	if verbose {
		t.printInfo(bw, t.root, "  ")
	}
	for _, line := range t.structureLines() {
		_, _ = bw.WriteString(line)
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (t *bst[K]) printInfo(bw *bufio.Writer, id nodeID, indent string) {
	_, _ = bw.WriteString(t.verboseInfo(id) + "\n")
	if l := t.left(id); l != nilID {
		_, _ = bw.WriteString(indent + "left: ")
		t.printInfo(bw, l, indent+"  ")
	}
	if r := t.right(id); r != nilID {
		_, _ = bw.WriteString(indent + "right: ")
		t.printInfo(bw, r, indent+"  ")
	}
}

// structureLines lays the nodes out on a grid of 2h-1 rows by
// 3*2^(h-1)+1 columns. The children of a node in row r sit two rows
// below, h-(r+1)/2-1 columns away for the connector and twice that
// for the child. A label longer than 4 bytes may cover the
// cells to its right.
func (t *bst[K]) structureLines() []string {
	height := int(t.subtreeHeight(t.root))
	if height < 2 {
		return []string{t.structureInfo(t.root)}
	}

	rows, cols := height*2-1, (2<<(height-2))*3+1
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	t.layout(grid, t.root, 0, cols/2, height)

	lines := make([]string, 0, rows)
	var sb strings.Builder
	for _, row := range grid {
		sb.Reset()
		for j := 0; j < len(row); {
			cell := row[j]
			if len(cell) == 0 {
				sb.WriteByte(' ')
				j++
				continue
			}
			sb.WriteString(cell)
			if len(cell) > 4 {
				j += 3
			} else {
				j += len(cell)
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

func (t *bst[K]) layout(grid [][]string, id nodeID, row, col, height int) {
	grid[row][col] = t.structureInfo(id)
	cur := (row + 1) / 2
	if cur == height {
		return
	}
	gap := height - cur - 1
	if l := t.left(id); l != nilID {
		grid[row+1][col-gap] = "/"
		t.layout(grid, l, row+2, col-gap*2, height)
	}
	if r := t.right(id); r != nilID {
		grid[row+1][col+gap] = "\\"
		t.layout(grid, r, row+2, col+gap*2, height)
	}
}
