package launch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"gopkg.in/yaml.v3"
)

// TableName is the table the ingestion job writes launches into.
const TableName = "SpaceXLaunches"

// Status 发射状态标签，数据中可能出现未知取值。
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusUpcoming Status = "upcoming"
)

// DefaultStatuses lists the statuses the dashboard charts unless configured otherwise.
func DefaultStatuses() []Status {
	return []Status{StatusSuccess, StatusFailed, StatusUpcoming}
}

// Launch is one flat launch record exactly as the store holds it.
type Launch struct {
	ID          ID     `json:"launch_id" dynamodbav:"launch_id" db:"launch_id" yaml:"launch_id"`
	MissionName string `json:"mission_name" dynamodbav:"mission_name" db:"mission_name" yaml:"mission_name"`
	RocketName  string `json:"rocket_name" dynamodbav:"rocket_name" db:"rocket_name" yaml:"rocket_name"`
	LaunchDate  string `json:"launch_date" dynamodbav:"launch_date" db:"launch_date" yaml:"launch_date"`
	Status      Status `json:"status" dynamodbav:"status" db:"status" yaml:"status"`
}

// ID is a launch identifier. Stores may hold it as a string or a number.
type ID string

// UnmarshalDynamoDBAttributeValue accepts both S and N attributes.
func (id *ID) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		*id = ID(v.Value)
	case *types.AttributeValueMemberN:
		*id = ID(v.Value)
	case *types.AttributeValueMemberNULL:
		*id = ""
	default:
		return fmt.Errorf("unsupported launch_id attribute type %T", av)
	}
	return nil
}

// UnmarshalYAML lets fixtures use bare numbers for identifiers.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("launch_id must be a scalar, line %d", value.Line)
	}
	if value.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = ID(value.Value)
	return nil
}

// UnmarshalJSON accepts string or numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("launch_id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
