// Package dynamo reads launch records from a DynamoDB table.
package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/zhouzirui/launchboard/backend/internal/config"
	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

var _ launch.Store = (*Store)(nil)

// Store scans a single table and decodes every item into a launch.
type Store struct {
	client dynamodb.ScanAPIClient
	table  string
}

// New wraps an existing DynamoDB client.
func New(client dynamodb.ScanAPIClient, table string) *Store {
	return &Store{client: client, table: table}
}

// NewFromConfig builds a DynamoDB client from the store configuration.
// Region and credentials fall back to the AWS default chain when unset.
func NewFromConfig(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.StaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return New(client, cfg.Table), nil
}

// Scan follows LastEvaluatedKey until the table is exhausted.
func (s *Store) Scan(ctx context.Context) ([]launch.Launch, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	items := make([]launch.Launch, 0)
	for page := 1; paginator.HasMorePages(); page++ {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning %s page %d: %w", s.table, page, err)
		}

		for _, it := range out.Items {
			flatten(it)
		}

		var decoded []launch.Launch
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &decoded); err != nil {
			return nil, fmt.Errorf("decoding %s page %d: %w", s.table, page, err)
		}
		items = append(items, decoded...)
	}
	return items, nil
}

// launchFields are the attributes decoded into a launch.
var launchFields = []string{"launch_id", "mission_name", "rocket_name", "launch_date", "status"}

// flatten rewrites launch attributes that are neither strings nor numbers
// into their JSON text, so an oddly typed record never fails the page.
func flatten(item map[string]types.AttributeValue) {
	for _, name := range launchFields {
		av, ok := item[name]
		if !ok {
			continue
		}
		switch av.(type) {
		case *types.AttributeValueMemberS, *types.AttributeValueMemberN, *types.AttributeValueMemberNULL:
			continue
		}
		item[name] = &types.AttributeValueMemberS{Value: attributeText(name, av)}
	}
}

func attributeText(name string, av types.AttributeValue) string {
	var v any
	if err := attributevalue.Unmarshal(av, &v); err != nil {
		log.Printf("[dynamo] dropping %s: %v", name, err)
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[dynamo] dropping %s: %v", name, err)
		return ""
	}
	return string(data)
}
