package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicator_Apply(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{
			name: "repeated id interleaved",
			ids:  []string{"A", "A", "B", "A"},
			want: []string{"Ax1", "Ax2", "Bx1", "Ax3"},
		},
		{
			name: "single occurrence still suffixed",
			ids:  []string{"idx"},
			want: []string{"idxx1"},
		},
		{
			name: "empty input",
			ids:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []*Record
			for _, id := range tt.ids {
				records = append(records, &Record{ID: id, Fields: map[string]string{"title": "t"}})
			}

			d := NewDeduplicator()
			got := d.Apply(records)

			var ids []string
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDeduplicator_IndependentRuns(t *testing.T) {
	first := NewDeduplicator()
	second := NewDeduplicator()

	assert.Equal(t, "Ax1", first.Next("A"))
	assert.Equal(t, "Ax2", first.Next("A"))
	assert.Equal(t, "Ax1", second.Next("A"))
	assert.Equal(t, 2, first.Seen("A"))
	assert.Equal(t, 0, second.Seen("B"))
}

func TestDeduplicator_ApplySkipsNil(t *testing.T) {
	records := []*Record{nil, {ID: "A", Fields: map[string]string{"k": "v"}}}
	NewDeduplicator().Apply(records)
	require.Nil(t, records[0])
	assert.Equal(t, "Ax1", records[1].ID)
}
