package adapters

import (
	"context"
	"errors"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"time"
)

type dynamoVideoRequestItem struct {
	ID                  string   `dynamodbav:"id"`
	OwnerID             string   `dynamodbav:"owner_id"`
	QuestionnaireRef    string   `dynamodbav:"questionnaire_ref"`
	CharacterID         string   `dynamodbav:"character_id"`
	Status              string   `dynamodbav:"status"`
	Script              string   `dynamodbav:"script"`
	CaptionsText        string   `dynamodbav:"captions_text"`
	CaptionsArtifactKey string   `dynamodbav:"captions_artifact_key"`
	FrameArtifactKeys   []string `dynamodbav:"frame_artifact_keys"`
	AudioArtifactKey    string   `dynamodbav:"audio_artifact_key"`
	LipSyncArtifactKey  string   `dynamodbav:"lipsync_artifact_key"`
	ComposedVideoKey    string   `dynamodbav:"composed_video_key"`
	ComposeState        string   `dynamodbav:"compose_state"`
	BasePath            string   `dynamodbav:"base_path"`
	CreatedAt           int64    `dynamodbav:"created_at"`
	UpdatedAt           int64    `dynamodbav:"updated_at"`
}

type dynamoRequestStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoRequestStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.VideoRequestStorePort {
	return &dynamoRequestStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoRequestStore) Create(ctx context.Context, req *domain.VideoRequest) error {
	av, err := dynamodbattribute.MarshalMap(toItem(req))
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal video request item", map[string]interface{}{
			"id": req.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:                av,
		TableName:           aws.String(s.dynamoConfig.TableName),
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to create video request item", map[string]interface{}{
			"id": req.ID,
		})
		return err
	}

	return nil
}

func (s *dynamoRequestStore) Get(ctx context.Context, id string) (*domain.VideoRequest, error) {
	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.dynamoConfig.TableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	}

	out, err := s.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to get video request item", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}

	var item dynamoVideoRequestItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		s.logger.ErrorWithFields(err, "Failed to unmarshal video request item", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}

	return fromItem(&item), nil
}

// Save rewrites the whole record, guarded on the status currently stored.
// The conditional write is what makes status transitions safe against a
// concurrent run of the same job: the loser sees ErrInvalidState.
func (s *dynamoRequestStore) Save(ctx context.Context, req *domain.VideoRequest, expected domain.Status) error {
	if req.Status != expected && !expected.CanTransitionTo(req.Status) {
		return domain.ErrInvalidState
	}

	req.UpdatedAt = time.Now().UTC()
	av, err := dynamodbattribute.MarshalMap(toItem(req))
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal video request item", map[string]interface{}{
			"id": req.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:                av,
		TableName:           aws.String(s.dynamoConfig.TableName),
		ConditionExpression: aws.String("#st = :expected"),
		ExpressionAttributeNames: map[string]*string{
			"#st": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":expected": {S: aws.String(string(expected))},
		},
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return domain.ErrInvalidState
		}
		s.logger.ErrorWithFields(err, "Failed to save video request item", map[string]interface{}{
			"id":     req.ID,
			"status": string(req.Status),
		})
		return err
	}

	return nil
}

func toItem(req *domain.VideoRequest) *dynamoVideoRequestItem {
	return &dynamoVideoRequestItem{
		ID:                  req.ID,
		OwnerID:             req.OwnerID,
		QuestionnaireRef:    req.QuestionnaireRef,
		CharacterID:         string(req.CharacterID),
		Status:              string(req.Status),
		Script:              req.Script,
		CaptionsText:        req.CaptionsText,
		CaptionsArtifactKey: req.CaptionsArtifactKey,
		FrameArtifactKeys:   req.FrameArtifactKeys,
		AudioArtifactKey:    req.AudioArtifactKey,
		LipSyncArtifactKey:  req.LipSyncArtifactKey,
		ComposedVideoKey:    req.ComposedVideoKey,
		ComposeState:        string(req.ComposeState),
		BasePath:            req.BasePath,
		CreatedAt:           req.CreatedAt.UnixMilli(),
		UpdatedAt:           req.UpdatedAt.UnixMilli(),
	}
}

func fromItem(item *dynamoVideoRequestItem) *domain.VideoRequest {
	return &domain.VideoRequest{
		ID:                  item.ID,
		OwnerID:             item.OwnerID,
		QuestionnaireRef:    item.QuestionnaireRef,
		CharacterID:         domain.CharacterID(item.CharacterID),
		Status:              domain.Status(item.Status),
		Script:              item.Script,
		CaptionsText:        item.CaptionsText,
		CaptionsArtifactKey: item.CaptionsArtifactKey,
		FrameArtifactKeys:   item.FrameArtifactKeys,
		AudioArtifactKey:    item.AudioArtifactKey,
		LipSyncArtifactKey:  item.LipSyncArtifactKey,
		ComposedVideoKey:    item.ComposedVideoKey,
		ComposeState:        domain.ComposeState(item.ComposeState),
		BasePath:            item.BasePath,
		CreatedAt:           time.UnixMilli(item.CreatedAt).UTC(),
		UpdatedAt:           time.UnixMilli(item.UpdatedAt).UTC(),
	}
}
