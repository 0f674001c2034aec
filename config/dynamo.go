package config

type DynamoConfig struct {
	TableName string
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName, err := requireEnv("DYNAMO_TABLE_NAME")
	if err != nil {
		return nil, err
	}

	return &DynamoConfig{
		TableName: tableName,
	}, nil
}
