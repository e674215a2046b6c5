package schema

import (
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sorubot/ent/kventry"
	"github.com/abhisek/sorubot/ent/llmrequestevent"
	"github.com/abhisek/sorubot/ent/migrate"
)

func fieldNames(fields ...[]ent.Field) []string {
	names := []string{"id"}
	for _, fs := range fields {
		for _, f := range fs {
			names = append(names, f.Descriptor().Name)
		}
	}
	return names
}

func tableColumns(t *testing.T, name string) []string {
	t.Helper()
	for _, tbl := range migrate.Tables {
		if tbl.Name == name {
			var cols []string
			for _, c := range tbl.Columns {
				cols = append(cols, c.Name)
			}
			return cols
		}
	}
	t.Fatalf("table %q not in migration", name)
	return nil
}

func TestKVEntryMatchesMigration(t *testing.T) {
	names := fieldNames(KVEntry{}.Fields())
	assert.Equal(t, kventry.Columns, names)
	assert.Equal(t, names, tableColumns(t, kventry.Table))

	key := KVEntry{}.Fields()[0].Descriptor()
	assert.True(t, key.Unique, "key must be unique for upserts")
	assert.True(t, key.Immutable)
}

func TestLLMRequestEventMatchesMigration(t *testing.T) {
	names := fieldNames(EventMixin{}.Fields(), LLMRequestEvent{}.Fields())
	assert.Equal(t, llmrequestevent.Columns, names)
	assert.Equal(t, names, tableColumns(t, llmrequestevent.Table))
}

func TestLLMRequestEventIndexes(t *testing.T) {
	var want []string
	for _, idx := range append(LLMRequestEvent{}.Indexes(), EventMixin{}.Indexes()...) {
		fields := idx.Descriptor().Fields
		require.Len(t, fields, 1)
		want = append(want, "llmrequestevent_"+fields[0])
	}

	var got []string
	for _, tbl := range migrate.Tables {
		if tbl.Name != llmrequestevent.Table {
			continue
		}
		for _, idx := range tbl.Indexes {
			got = append(got, idx.Name)
		}
	}
	assert.ElementsMatch(t, want, got)
}
