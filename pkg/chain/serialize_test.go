package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "a $$ b", Join([]string{" a", "", "b "}, false))
	assert.Equal(t, "a $$ b $$ a", Join([]string{"a", "b"}, true))
	assert.Equal(t, "a", Join([]string{"a"}, true))
	assert.Equal(t, "", Join(nil, true))
}

func TestLine(t *testing.T) {
	line, ok := Line("F1", []string{"FireAll", "+power_exec Distribute_Shields"}, false)
	assert.True(t, ok)
	assert.Equal(t, `F1 "FireAll $$ +power_exec Distribute_Shields"`, line)

	_, ok = Line("F2", []string{"", "  "}, false)
	assert.False(t, ok, "empty chains are omitted")

	line, _ = Line("Space", []string{"a", "b", "c"}, true)
	assert.Equal(t, `Space "a $$ b $$ c $$ b $$ a"`, line)

	_, ok = Line("F3", []string{"FireAll", `say "hi"`}, false)
	assert.False(t, ok, "embedded quotes cannot be written")
}

func TestQuotable(t *testing.T) {
	assert.True(t, Quotable([]string{"FireAll", "say hi"}))
	assert.True(t, Quotable(nil))
	assert.False(t, Quotable([]string{"FireAll", `say "hi"`}))
}

func TestAliasLine(t *testing.T) {
	assert.Equal(t, "alias Attack <& FireAll $$ FireTorps &>", AliasLine("Attack", []string{"FireAll", "FireTorps"}, false))
	assert.Equal(t, "alias Empty <& &>", AliasLine("Empty", nil, false))
}
