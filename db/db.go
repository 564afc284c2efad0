// Package db looks up catalog metadata (artist, title, release, year) for
// a source file so it can be embedded in the sidecar header. The store is
// a DynamoDB table keyed by filename; endpoint and table name come from
// the environment.
package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"

	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
)

// GetSourceMetadata returns the metadata row for filename, or nil when
// the table has no entry for it.
func GetSourceMetadata(filename string) (*model.SourceMetadata, error) {
	endpoint := constants.GetMetadataEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating metadata db session")
	}

	client := dynamodb.New(sess)
	input := &dynamodb.GetItemInput{
		TableName: aws.String(constants.GetMetadataTable()),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		},
	}
	out, err := client.GetItem(input)
	if err != nil {
		return nil, errors.Wrap(err, "fetching source metadata")
	}
	if out.Item == nil {
		return nil, nil
	}

	var meta model.SourceMetadata
	if v, ok := out.Item["Artist"]; ok && v.S != nil {
		meta.Artist = *v.S
	}
	if v, ok := out.Item["Title"]; ok && v.S != nil {
		meta.Title = *v.S
	}
	if v, ok := out.Item["Release"]; ok && v.S != nil {
		meta.Release = *v.S
	}
	if v, ok := out.Item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		meta.Year = uint(year)
	}
	return &meta, nil
}
