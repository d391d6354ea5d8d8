package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/samvad-news-digest/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkDeliverSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "digest-queue",
		typ:      TypeSQS,
		queueURL: "https://sqs.ap-south-1.amazonaws.com/123/digests",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Deliver(context.Background(), Event{
		Origin:  domain.OriginMock,
		Summary: "digest",
	})
	if err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.ap-south-1.amazonaws.com/123/digests" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["origin"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "mock" {
		t.Fatalf("origin attribute missing or wrong: %#v", attr)
	}
	if client.input.MessageBody == nil || !strings.Contains(aws.ToString(client.input.MessageBody), `"origin":"mock"`) {
		t.Fatalf("MessageBody missing origin: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkDeliverError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("boom")}
	sink := &sqsSink{
		id:       "digest-queue",
		typ:      TypeSQS,
		queueURL: "https://sqs.ap-south-1.amazonaws.com/123/digests",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Deliver(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error from Deliver")
	}
}
