package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphColumns() []Column {
	return []Column{
		{Title: "ID", Width: 2},
		{Title: "Name", Width: 20},
		{Title: "Description", Width: 11},
		{Title: "Chain", Width: 5},
		{Title: "Created", Width: 16},
	}
}

func topicColumns() []Column {
	return []Column{
		{Title: "Event", Width: 5},
		{Title: "Signature", Width: 9},
		{Title: "Topic", Width: 66},
	}
}

const transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestNewTableHasNoSelection(t *testing.T) {
	tbl := NewTable(graphColumns())
	assert.Len(t, tbl.Columns, 5)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, -1, tbl.SelIdx)
}

func TestGraphTableRender(t *testing.T) {
	tbl := NewTable(graphColumns())
	tbl.AddRow(Row{"v1", "Uniswap", "--", "base (8453)", "2024-05-01 10:00"})
	tbl.AddRow(Row{"v2", "Aave", "lending", "eth (1)", "not-a-date"})
	tbl.Fit()

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, divider and two rows")
	for _, title := range []string{"ID", "Name", "Description", "Chain", "Created"} {
		assert.Contains(t, lines[0], title)
	}
	assert.Contains(t, lines[1], strings.Repeat("-", 11))
	assert.Contains(t, lines[2], "Uniswap")
	assert.Contains(t, lines[2], "base (8453)")
	assert.Contains(t, lines[3], "lending")
	assert.Contains(t, lines[3], "not-a-date")
}

func TestTopicTableKeepsFullHash(t *testing.T) {
	tbl := NewTable(topicColumns())
	tbl.AddRow(Row{"Transfer", "Transfer(address,address,uint256)", transferTopic})
	tbl.Fit()

	out := tbl.Render()
	assert.Contains(t, out, "Transfer(address,address,uint256)")
	assert.Contains(t, out, transferTopic)
	assert.Equal(t, len("Transfer(address,address,uint256)"), tbl.Columns[1].Width)
}

func TestTableRenderWithoutRows(t *testing.T) {
	out := NewTable(topicColumns()).Render()
	assert.Contains(t, out, "Signature")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestTableMissingCellsRenderEmpty(t *testing.T) {
	tbl := NewTable(graphColumns())
	tbl.AddRow(Row{"v1", "Uniswap"})
	out := tbl.Render()
	assert.Contains(t, out, "Uniswap")
}

func TestTableKeepsRowOrder(t *testing.T) {
	tbl := NewTable(topicColumns())
	for _, name := range []string{"Approval", "Swap", "Transfer"} {
		tbl.AddRow(Row{name, name + "()", "0x"})
	}
	out := tbl.Render()
	assert.Less(t, strings.Index(out, "Approval"), strings.Index(out, "Swap"))
	assert.Less(t, strings.Index(out, "Swap"), strings.Index(out, "Transfer"))
}

func TestTableSelectedRowStillRendered(t *testing.T) {
	tbl := NewTable(graphColumns())
	tbl.AddRow(Row{"v1", "Uniswap"})
	tbl.AddRow(Row{"v2", "Aave"})
	tbl.SelIdx = 1

	out := tbl.Render()
	assert.Contains(t, out, "Uniswap")
	assert.Contains(t, out, "Aave")
}

func TestTableFitWidensToContent(t *testing.T) {
	tbl := NewTable([]Column{{Title: "ID", Width: 4}, {Title: "Name", Width: 20}})
	tbl.AddRow(Row{"clx9abcdefghij", "short"})
	tbl.Fit()

	assert.Equal(t, 14, tbl.Columns[0].Width)
	assert.Equal(t, 20, tbl.Columns[1].Width, "width never shrinks below the minimum")
	assert.Contains(t, tbl.Render(), "clx9abcdefghij")
}

func TestTableFitCountsTitle(t *testing.T) {
	tbl := NewTable(graphColumns())
	tbl.Fit()
	assert.Equal(t, len("Description"), tbl.Columns[2].Width)
	assert.Equal(t, 16, tbl.Columns[4].Width, "minimum already wider than the title")

	narrow := NewTable([]Column{{Title: "Signature", Width: 3}})
	narrow.Fit()
	assert.Equal(t, len("Signature"), narrow.Columns[0].Width)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "abc", pad("abc", 3))
	assert.Equal(t, "abc", pad("abcdef", 3))
	assert.Equal(t, "ab…  ", pad("ab…", 5))
}

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockCreateSummary(t *testing.T) {
	out := KeyValueBlock("", [][2]string{
		{"Name", "my-index"},
		{"Chain", "Base"},
		{"ID", "g1"},
		{"Version", "v1"},
	})
	for _, want := range []string{"Name:", "my-index", "Chain:", "Base", "ID:", "g1", "Version:", "v1"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Name:"), strings.Index(out, "Version:"))
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
}

func TestKeyValueBlockTitle(t *testing.T) {
	out := KeyValueBlock("Graph", nil)
	assert.Contains(t, out, "Graph")
}
