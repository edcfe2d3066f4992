package db

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chartband/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo serves PutItem and BatchGetItem from memory. When stingy is set
// it answers one key per batch call and hands the rest back as unprocessed.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items  map[string]map[string]*dynamodb.AttributeValue
	calls  int
	stingy bool
}

func newFake() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}}
}

func (f *fakeDynamo) PutItem(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	f.calls++
	out := &dynamodb.BatchGetItemOutput{
		Responses:       map[string][]map[string]*dynamodb.AttributeValue{},
		UnprocessedKeys: map[string]*dynamodb.KeysAndAttributes{},
	}
	for table, ka := range in.RequestItems {
		keys := ka.Keys
		if f.stingy && len(keys) > 1 {
			out.UnprocessedKeys[table] = &dynamodb.KeysAndAttributes{Keys: keys[1:]}
			keys = keys[:1]
		}
		for _, k := range keys {
			if item, ok := f.items[*k["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func tune(id string) model.Tune {
	return model.Tune{
		ID: id, Title: "Title " + id, Composer: "Someone", Style: "Bossa", DefaultKey: "F", DefaultTempo: 140,
		Sections: []model.Section{{Label: "A", Bars: []model.Bar{{Chords: []string{"F^7"}, RepeatStart: true}, {Chords: []string{"G-7", "C7"}, RepeatEnd: 2}}}},
	}
}

func TestPutAndGet(t *testing.T) {
	assert := assert.New(t)
	f := newFake()
	s := New(f, "tunes")

	require.NoError(t, s.PutTune(tune("a")))
	require.NoError(t, s.PutTune(tune("b")))
	assert.Error(s.PutTune(model.Tune{}))

	got, err := s.GetTunes([]string{"a", "b", "zzz"})
	require.NoError(t, err)
	assert.Len(got, 2)
	assert.Equal(tune("a"), got["a"])
	assert.Equal(1, f.calls)
}

func TestGetFollowsUnprocessedKeys(t *testing.T) {
	f := newFake()
	f.stingy = true
	s := New(f, "tunes")
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.PutTune(tune(id)))
	}

	got, err := s.GetTunes([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 3, f.calls)
}

func TestGetSplitsLargeRequests(t *testing.T) {
	f := newFake()
	s := New(f, "tunes")
	var ids []string
	for i := 0; i < 150; i++ {
		ids = append(ids, fmt.Sprint(i))
	}
	got, err := s.GetTunes(ids)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, f.calls)
}

func TestFromItemErrors(t *testing.T) {
	_, err := fromItem(map[string]*dynamodb.AttributeValue{})
	assert.Error(t, err)

	_, err = fromItem(map[string]*dynamodb.AttributeValue{"PK": {S: aws.String("x")}})
	assert.Error(t, err)

	_, err = fromItem(map[string]*dynamodb.AttributeValue{
		"PK":    {S: aws.String("x")},
		"Chart": {S: aws.String("not a link")},
	})
	assert.Error(t, err)
}
