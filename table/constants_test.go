package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerivedConstants(t *testing.T) {
	require.Equal(t, 293, RowSize)
	require.EqualValues(t, 6, CommonNodeHeaderSize)
	require.EqualValues(t, 14, LeafNodeHeaderSize)
	require.EqualValues(t, 297, LeafNodeCellSize)
	require.EqualValues(t, 4082, LeafNodeSpaceForCells)
	require.EqualValues(t, 13, LeafNodeMaxCells)
	require.EqualValues(t, 7, LeafNodeRightSplitCount)
	require.EqualValues(t, 7, LeafNodeLeftSplitCount)
	require.EqualValues(t, LeafNodeMaxCells+1, LeafNodeLeftSplitCount+LeafNodeRightSplitCount)
	require.EqualValues(t, 3, InternalNodeMaxCells)
}
