package vector

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
)

// TestScoredPointToHit 测试命中结果转换
func TestScoredPointToHit(t *testing.T) {
	scored := &qdrant.ScoredPoint{
		Id:    qdrant.NewID("11111111-2222-3333-4444-555555555555"),
		Score: 0.87,
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"content":   "Symptoms: joint pain\nTreatment: Abhyanga",
			"source":    "data1.csv",
			"row_index": 42,
		}),
	}

	hit := scoredPointToHit(scored)
	assert.NotNil(t, hit)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", hit.ID)
	assert.InDelta(t, 0.87, hit.Score, 0.001)
	assert.Equal(t, "Symptoms: joint pain\nTreatment: Abhyanga", hit.Content)
	assert.Equal(t, "data1.csv", hit.Source)
	assert.Equal(t, int64(42), hit.RowIndex)
}

// TestScoredPointToHit_NilPayload 测试空 payload 命中被丢弃
func TestScoredPointToHit_NilPayload(t *testing.T) {
	scored := &qdrant.ScoredPoint{Score: 0.5}
	assert.Nil(t, scoredPointToHit(scored))
}

// TestExtractIntValue 测试整数值提取的类型兼容
func TestExtractIntValue(t *testing.T) {
	assert.Equal(t, int64(0), extractIntValue(nil))
	assert.Equal(t, int64(7), extractIntValue(qdrant.NewValueInt(7)))
	assert.Equal(t, int64(3), extractIntValue(qdrant.NewValueDouble(3.0)))
}
