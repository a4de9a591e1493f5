package aws_handler

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/ses"
)

// AWSHandler bundles the AWS service clients the backend talks to. All
// clients share one session and are constructed once at process start.
type AWSHandler struct {
	SecretManager *SecretManager
	DynamoDB      *DynamoDBHandler
	S3            *S3Handler
	SES           *SESHandler
	CloudWatch    *CloudWatchHandler
	Bedrock       *bedrockruntime.BedrockRuntime
}

func NewAWSHandler(region string) (*AWSHandler, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)

	if err != nil {
		return nil, err
	}

	return &AWSHandler{
		SecretManager: NewSecretManager(secretsmanager.New(sess)),
		DynamoDB:      NewDynamoDBHandler(dynamodb.New(sess)),
		S3:            NewS3Handler(s3.New(sess)),
		SES:           NewSESHandler(ses.New(sess)),
		CloudWatch:    NewCloudWatchHandler(cloudwatch.New(sess)),
		Bedrock:       bedrockruntime.New(sess),
	}, nil
}
