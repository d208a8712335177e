package lattice

import (
	"fmt"

	"github.com/klothoplatform/lattice/pkg/construct"
)

type LoggingDestinationType string

const (
	LoggingDestinationS3         LoggingDestinationType = "S3"
	LoggingDestinationKinesis    LoggingDestinationType = "KINESIS"
	LoggingDestinationCloudWatch LoggingDestinationType = "CLOUDWATCH"
)

// LoggingDestination is where access logs of a service or service network are delivered.
type LoggingDestination struct {
	Type LoggingDestinationType
	// Arn is the destination's ARN, as a literal or a deploy-time token.
	Arn any
	// Name identifies the destination within the stack; it defaults to the ARN when that is a literal.
	Name string
}

func S3Destination(bucketArn any) LoggingDestination {
	return LoggingDestination{Type: LoggingDestinationS3, Arn: bucketArn}
}

func KinesisDestination(streamArn any) LoggingDestination {
	return LoggingDestination{Type: LoggingDestinationKinesis, Arn: streamArn}
}

func CloudWatchDestination(logGroupArn any) LoggingDestination {
	return LoggingDestination{Type: LoggingDestinationCloudWatch, Arn: logGroupArn}
}

func (d LoggingDestination) addr() string {
	if d.Name != "" {
		return d.Name
	}
	return construct.Addr(string(d.Type), fmt.Sprint(d.Arn))
}

func accessLogSubscriptionId(stack *Stack, parent string, d LoggingDestination) (construct.ResourceId, error) {
	if d.Arn == nil || d.Arn == "" {
		return construct.ResourceId{}, invalid("A logging destination must have an ARN")
	}
	return stack.Id(AccessLogSubscriptionType, path(parent, "AccessLogSubscription"+d.addr())), nil
}

func addAccessLogSubscription(stack *Stack, parent string, resourceIdentifier any, d LoggingDestination) error {
	id, err := accessLogSubscriptionId(stack, parent, d)
	if err != nil {
		return err
	}
	return stack.AddResource(&construct.Resource{ID: id, Properties: construct.Properties{
		"DestinationArn":     d.Arn,
		"ResourceIdentifier": resourceIdentifier,
	}})
}
