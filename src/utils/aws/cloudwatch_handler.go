package aws_handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
)

const metricNamespaceFormat = "Walter/%s"

type CloudWatchHandler struct {
	svc *cloudwatch.CloudWatch
}

func NewCloudWatchHandler(svc *cloudwatch.CloudWatch) *CloudWatchHandler {
	return &CloudWatchHandler{svc: svc}
}

// EmitCount publishes a single count metric under the domain's namespace.
func (h *CloudWatchHandler) EmitCount(ctx context.Context, domain, metricName string, value float64) error {
	_, err := h.svc.PutMetricDataWithContext(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(fmt.Sprintf(metricNamespaceFormat, domain)),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       aws.String(cloudwatch.StandardUnitCount),
			},
		},
	})
	return err
}
