package sqsgath

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

func NewSqsReportQueueGatherer(groupUuid string, reportSqsUrl string) *sqsReportQueueGatherer {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic(fmt.Sprintf("unable to load SDK config, %v", err))
	}

	return &sqsReportQueueGatherer{
		sqsClient: sqs.NewFromConfig(cfg),
		queueUrl:  reportSqsUrl,
		groupUuid: groupUuid,
	}
}
