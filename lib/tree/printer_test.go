package tree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrint_Empty(t *testing.T) {
	for _, kind := range treeKinds {
		buf := &bytes.Buffer{}
		require.NoError(t, New[int](kind).Print(buf, true))
		require.Equal(t, "Empty tree!\n", buf.String())
	}
}

func TestPrint_AVL(t *testing.T) {
	tree := avlFrom(5, 6, 8)
	buf := &bytes.Buffer{}
	require.NoError(t, tree.Print(buf, false))
	require.Equal(t, strings.Join([]string{
		"   6",
		"  / \\",
		" 5   8",
	}, "\n")+"\n", buf.String())

	buf.Reset()
	require.NoError(t, tree.Print(buf, true))
	require.Equal(t, strings.Join([]string{
		"(Value: 6, Height: 2, Is Leaf: false)",
		"  left: (Value: 5, Height: 1, Is Leaf: true)",
		"  right: (Value: 8, Height: 1, Is Leaf: true)",
		"   6",
		"  / \\",
		" 5   8",
	}, "\n")+"\n", buf.String())
}

func TestPrint_RB(t *testing.T) {
	tree := rbFrom(1, 2, 3)
	buf := &bytes.Buffer{}
	require.NoError(t, tree.Print(buf, true))
	require.Equal(t, strings.Join([]string{
		"(Color: Black, Value: 2, Is Leaf: false)",
		"  left: (Color: Red, Value: 1, Is Leaf: true)",
		"  right: (Color: Red, Value: 3, Is Leaf: true)",
		"   2b",
		"  / \\",
		" 1   3",
	}, "\n")+"\n", buf.String())
}

func TestPrint_SingleAndDeep(t *testing.T) {
	tree := rbFrom(8)
	buf := &bytes.Buffer{}
	require.NoError(t, tree.Print(buf, false))
	require.Equal(t, "8b\n", buf.String())

	//	      4
	//	    /   \
	//	  2       6
	//	 / \     / \
	//	1   3   5   7
	deep := avlFrom(4, 2, 6, 1, 3, 5, 7)
	lines := deep.structureLines()
	require.Len(t, lines, 5)
	require.Equal(t, "      4", lines[0])
	require.Equal(t, "    /   \\", lines[1])
	require.Equal(t, "  2       6", lines[2])
	require.Equal(t, " / \\     / \\", lines[3])
	require.Equal(t, "1   3   5   7", lines[4])
}

type failedWriter struct{}

func (failedWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPrint_WriterError(t *testing.T) {
	require.Error(t, avlFrom(1, 2).Print(failedWriter{}, true))
}
