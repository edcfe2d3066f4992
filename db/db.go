package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/model"
	"github.com/pkg/errors"
)

// BatchGetItem takes at most this many keys per call.
const maxBatch = 100

// Store keeps tunes in a DynamoDB table keyed by tune id. Charts are stored
// as irealbook:// links.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func Connect(endpoint, region, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return New(dynamodb.New(sess), table), nil
}

func toItem(t model.Tune) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK":       {S: aws.String(t.ID)},
		"Title":    {S: aws.String(t.Title)},
		"Composer": {S: aws.String(t.Composer)},
		"Style":    {S: aws.String(t.Style)},
		"Key":      {S: aws.String(t.DefaultKey)},
		"Tempo":    {N: aws.String(strconv.Itoa(t.DefaultTempo))},
		"Chart":    {S: aws.String(chart.URI(t))},
	}
}

func fromItem(item map[string]*dynamodb.AttributeValue) (model.Tune, error) {
	pk, ok := item["PK"]
	if !ok || pk.S == nil {
		return model.Tune{}, errors.New("item has no PK")
	}
	c, ok := item["Chart"]
	if !ok || c.S == nil {
		return model.Tune{}, errors.Errorf("item %v has no chart", *pk.S)
	}
	t, err := chart.ParseURI(*c.S)
	if err != nil {
		return model.Tune{}, errors.Wrapf(err, "item %v", *pk.S)
	}
	t.ID = *pk.S
	if v, ok := item["Tempo"]; ok && v.N != nil {
		tempo, err := strconv.Atoi(*v.N)
		if err == nil && tempo > 0 {
			t.DefaultTempo = tempo
		}
	}
	return t, nil
}

func (s *Store) PutTune(t model.Tune) error {
	if t.ID == "" {
		return errors.New("tune has no id")
	}
	_, err := s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      toItem(t),
	})
	return errors.Wrapf(err, "Could not put tune %v", t.ID)
}

// GetTunes fetches the tunes with the given ids; ids not in the table are
// simply absent from the result.
func (s *Store) GetTunes(ids []string) (map[string]model.Tune, error) {
	res := make(map[string]model.Tune)
	for start := 0; start < len(ids); start += maxBatch {
		end := start + maxBatch
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.getBatch(ids[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Store) getBatch(ids []string, res map[string]model.Tune) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{"PK": {S: aws.String(id)}})
	}
	requests := map[string]*dynamodb.KeysAndAttributes{s.table: {Keys: keys}}

	for len(requests) > 0 {
		out, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: requests})
		if err != nil {
			return errors.Wrap(err, "Error from DynamoDB")
		}
		for _, item := range out.Responses[s.table] {
			t, err := fromItem(item)
			if err != nil {
				return err
			}
			res[t.ID] = t
		}
		requests = out.UnprocessedKeys
	}
	return nil
}
