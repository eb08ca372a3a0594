package pinecone

import (
	"testing"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jinford/rag-chatbot/internal/core/ingestion"
)

func TestToVectors(t *testing.T) {
	t.Parallel()

	records := []ingestion.Record{
		{
			ID:     "rec-1",
			Values: []float32{0.1, 0.2},
			Metadata: ingestion.RecordMetadata{
				Source: "docs/a.md",
				Chunk:  "first chunk",
			},
		},
		{
			ID:     "rec-2",
			Values: []float32{0.3},
			Metadata: ingestion.RecordMetadata{
				Source: "docs/b.md",
				Chunk:  "second chunk",
			},
		},
	}

	vectors, err := toVectors(records)
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.Equal(t, "rec-1", vectors[0].Id)
	require.NotNil(t, vectors[0].Values)
	assert.Equal(t, []float32{0.1, 0.2}, *vectors[0].Values)

	fields := vectors[0].Metadata.GetFields()
	assert.Equal(t, "docs/a.md", fields[metadataSource].GetStringValue())
	assert.Equal(t, "first chunk", fields[metadataChunk].GetStringValue())

	assert.Equal(t, "rec-2", vectors[1].Id)
	assert.Equal(t, "docs/b.md", vectors[1].Metadata.GetFields()[metadataSource].GetStringValue())
}

func TestMatchesFromResponse(t *testing.T) {
	t.Parallel()

	metadata, err := structpb.NewStruct(map[string]any{
		metadataSource: "docs/a.md",
		metadataChunk:  "relevant text",
	})
	require.NoError(t, err)

	resp := &pinecone.QueryVectorsResponse{
		Matches: []*pinecone.ScoredVector{
			{
				Vector: &pinecone.Vector{
					Id:       "rec-1",
					Metadata: metadata,
				},
				Score: 0.92,
			},
			// メタデータなしのマッチは空フィールドのまま残す
			{
				Vector: &pinecone.Vector{Id: "rec-2"},
				Score:  0.5,
			},
			// ベクトル欠落のマッチは読み飛ばす
			{Score: 0.1},
			nil,
		},
	}

	matches := matchesFromResponse(resp)
	require.Len(t, matches, 2)

	assert.Equal(t, "relevant text", matches[0].Chunk)
	assert.Equal(t, "docs/a.md", matches[0].Source)
	assert.InDelta(t, 0.92, matches[0].Score, 1e-6)

	assert.Empty(t, matches[1].Chunk)
	assert.Empty(t, matches[1].Source)
}

func TestStatsFromResponse(t *testing.T) {
	t.Parallel()

	dimension := uint32(1536)
	resp := &pinecone.DescribeIndexStatsResponse{
		Dimension:        &dimension,
		IndexFullness:    0.25,
		TotalVectorCount: 1200,
		Namespaces: map[string]*pinecone.NamespaceSummary{
			"default": {VectorCount: 1000},
			"draft":   {VectorCount: 200},
			"broken":  nil,
		},
	}

	got := statsFromResponse(resp)

	assert.Equal(t, uint32(1536), got.Dimension)
	assert.InDelta(t, 0.25, got.IndexFullness, 1e-6)
	assert.Equal(t, uint32(1200), got.TotalVectorCount)
	assert.Equal(t, map[string]uint32{"default": 1000, "draft": 200}, got.Namespaces)
}

func TestStatsFromResponseWithoutDimension(t *testing.T) {
	t.Parallel()

	got := statsFromResponse(&pinecone.DescribeIndexStatsResponse{TotalVectorCount: 3})

	assert.Zero(t, got.Dimension)
	assert.Equal(t, uint32(3), got.TotalVectorCount)
	assert.Empty(t, got.Namespaces)
}
